package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "spellz",
	Short: "Spelling practice for kids",
	Long: `spellz reads each word of a weekly spelling list out loud and lets the
learner answer by typing or by saying the word.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the command line. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("words", "", "Word list file, YAML or JSON (overrides SPELLZ_WORDS)")
	f.String("name", "", "Learner's name (overrides SPELLZ_NAME)")
	f.String("speech", "", "Speech backend: auto, openai, whisper, system or none")
	f.String("whisper-model", "", "Path to a whisper.cpp model file")
	f.Duration("delay", 0, "Pause after a correct answer (default 2s)")
	f.String("log-file", "", "Write logs to this file")
	f.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads .env and SPELLZ_* variables, then applies the flags
// that were set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	str("words", &cfg.WordsPath)
	str("name", &cfg.Name)
	str("whisper-model", &cfg.WhisperModel)
	str("log-file", &cfg.LogFile)

	if flags.Changed("speech") {
		v, _ := flags.GetString("speech")
		cfg.Speech = config.SpeechBackend(v)
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		cfg.LogLevel = config.LogLevel(v)
	}
	if flags.Changed("delay") {
		d, _ := flags.GetDuration("delay")
		if d < 0 || d > time.Minute {
			return cfg, fmt.Errorf("--delay %v out of range (0 to 1m)", d)
		}
		cfg.AdvanceDelay = d
	}

	return cfg, cfg.Validate()
}
