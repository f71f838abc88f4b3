package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var sayCmd = &cobra.Command{
	Use:   "say <text>...",
	Short: "Speak text with the configured voice",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hold, _ := cmd.Flags().GetDuration("hold")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.close()

		text := strings.Join(args, " ")
		rt.logger.Info("say", "text", text, "backend", rt.speech.Speak)
		rt.speech.Synthesizer.Speak(text, rt.cfg.VoiceOptions())

		// Speak is fire-and-forget and closing the backends cuts playback.
		select {
		case <-time.After(hold):
		case <-cmd.Context().Done():
		}
		return nil
	},
}

func init() {
	sayCmd.Flags().Duration("hold", 4*time.Second, "How long to keep the voice running")
}
