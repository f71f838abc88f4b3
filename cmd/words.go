package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/spellz/internal/llm"
	"github.com/abhisek/spellz/internal/wordgen"
	"github.com/abhisek/spellz/internal/words"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Inspect, check and generate word lists",
}

var wordsListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "Print a word list (the built-in one without a file)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else if cfg, err := loadConfig(cmd); err == nil {
			path = cfg.WordsPath
		}
		list, err := loadList(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if list.Title != "" {
			fmt.Fprintln(out, list.Title)
			fmt.Fprintln(out, strings.Repeat("─", len([]rune(list.Title))))
		}
		width := lo.Max(lo.Map(list.Entries, func(e words.Entry, _ int) int { return len([]rune(e.Word)) }))
		for i, e := range list.Entries {
			fmt.Fprintf(out, "%3d. %-*s  %s\n", i+1, width, e.Word, e.Hint)
		}
		return nil
	},
}

var wordsValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check word list files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := words.NewOSLoader()
		failed := 0
		for _, path := range args {
			list, err := loader.Load(path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d words\n", path, list.Len())
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d lists are invalid", failed, len(args))
		}
		return nil
	},
}

var wordsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft new word lists with a language model",
	Long: `Draft one word list per --theme with the configured LLM provider and
save each as YAML in --out.

The provider comes from SPELLZ_LLM_PROVIDER and its SPELLZ_*_API_KEY, or
from the first of ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY and
OPENROUTER_API_KEY that is set.`,
	RunE: runGenerate,
}

func init() {
	wordsGenerateCmd.Flags().StringSlice("theme", nil, "Theme of a list; repeat for several lists (required)")
	wordsGenerateCmd.Flags().Int("grade", 0, "School grade 1-5, 0 for any")
	wordsGenerateCmd.Flags().Int("count", 10, "Words per list")
	wordsGenerateCmd.Flags().String("out", ".", "Directory the lists are written to")
	wordsGenerateCmd.Flags().StringSlice("exclude", nil, "Word list files whose words must not be reused")
	wordsGenerateCmd.Flags().Int("parallel", 3, "Lists generated at the same time")
	_ = wordsGenerateCmd.MarkFlagRequired("theme")

	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsValidateCmd)
	wordsCmd.AddCommand(wordsGenerateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	themes, _ := cmd.Flags().GetStringSlice("theme")
	grade, _ := cmd.Flags().GetInt("grade")
	count, _ := cmd.Flags().GetInt("count")
	outDir, _ := cmd.Flags().GetString("out")
	excludeFiles, _ := cmd.Flags().GetStringSlice("exclude")
	parallel, _ := cmd.Flags().GetInt("parallel")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, logCloser, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	loader := words.NewOSLoader()
	var exclude []string
	for _, path := range excludeFiles {
		list, err := loader.Load(path)
		if err != nil {
			return err
		}
		exclude = append(exclude, list.Words()...)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := newLLMProvider(ctx, logger)
	if err != nil {
		return err
	}
	gen := wordgen.New(provider, wordgen.DefaultConfig())

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var mu sync.Mutex
	out := cmd.OutOrStdout()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for _, theme := range lo.Uniq(themes) {
		g.Go(func() error {
			list, err := gen.Generate(gctx, wordgen.Input{
				Theme:   theme,
				Grade:   grade,
				Count:   count,
				Exclude: exclude,
			})
			if err != nil {
				return fmt.Errorf("theme %q: %w", theme, err)
			}
			path := filepath.Join(outDir, slug(theme)+".yaml")
			if err := loader.Save(path, list); err != nil {
				return fmt.Errorf("theme %q: %w", theme, err)
			}

			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(out, "✓ %s: %d words → %s\n", theme, list.Len(), path)
			return nil
		})
	}
	return g.Wait()
}

// newLLMProvider builds the provider from SPELLZ_* settings, falling back
// to the vendors' own key variables.
func newLLMProvider(ctx context.Context, logger *slog.Logger) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if !cfg.Configured() {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg = found
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	return llm.NewProvider(ctx, cfg, logger)
}

// slug turns a theme into a file name.
func slug(theme string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(theme))
	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if s == "" {
		return "words"
	}
	return s
}
