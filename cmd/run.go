package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/app"
	"github.com/abhisek/spellz/internal/config"
	"github.com/abhisek/spellz/internal/practice"
	"github.com/abhisek/spellz/internal/selfupdate"
	"github.com/abhisek/spellz/internal/speech/backend"
	"github.com/abhisek/spellz/internal/words"
)

// deps bundles what every practice front end needs.
type deps struct {
	cfg     config.Config
	logger  *slog.Logger
	list    words.List
	speech  *backend.Backends
	closers []io.Closer
}

// setup loads config, logging, the word list and the speech backends.
// The caller must call close.
func setup(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}
	rt := &deps{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	rt.list, err = loadList(cfg.WordsPath)
	if err != nil {
		rt.close()
		return nil, err
	}

	rt.speech, err = backend.Open(cfg, logger)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("open speech backends: %w", err)
	}
	rt.closers = append(rt.closers, rt.speech)
	return rt, nil
}

func (rt *deps) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i].Close(); err != nil && rt.logger != nil {
			rt.logger.Warn("close failed", "error", err)
		}
	}
}

// newCoordinator starts a practice run over the loaded list.
func (rt *deps) newCoordinator(onChange func()) (*practice.Coordinator, error) {
	typed, spoken := practice.Affirmations(rt.cfg.Name)
	return practice.New(rt.list.Entries, practice.Options{
		Recognizer:        rt.speech.Recognizer,
		Synthesizer:       rt.speech.Synthesizer,
		AdvanceDelay:      rt.cfg.AdvanceDelay,
		Voice:             rt.cfg.VoiceOptions(),
		TypedAffirmation:  typed,
		SpokenAffirmation: spoken,
		Logger:            rt.logger.With("component", "practice"),
		OnChange:          onChange,
	})
}

func loadList(path string) (words.List, error) {
	if path == "" {
		return words.Builtin(), nil
	}
	list, err := words.NewOSLoader().Load(path)
	if err != nil {
		return words.List{}, fmt.Errorf("load word list: %w", err)
	}
	return list, nil
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	changes := app.NewNotifier()
	coord, err := rt.newCoordinator(changes.Notify)
	if err != nil {
		return err
	}
	defer coord.Close()

	rt.logger.Info("starting",
		"version", version,
		"words", rt.list.Len(),
		"listen", rt.speech.Listen,
		"speak", rt.speech.Speak,
	)

	return app.Run(app.Options{
		List:          rt.list,
		Learner:       rt.cfg.Name,
		Coordinator:   coord,
		Changes:       changes,
		LatestVersion: latestVersion(cmd.Context(), rt.logger),
		Logger:        rt.logger,
	})
}

// latestVersion returns a newer release tag, or "" when there is none or
// the lookup fails quickly enough to not hold up start-up.
func latestVersion(ctx context.Context, logger *slog.Logger) string {
	if version == selfupdate.DevVersion {
		return ""
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 1500*time.Millisecond)
	defer cancel()

	res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			logger.Debug("update check failed", "error", err)
		}
		return ""
	}
	if !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}
