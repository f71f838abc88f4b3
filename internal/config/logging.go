package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger opens the log file and returns a JSON logger tagged with a
// fresh run_id. The terminal belongs to the UI, so without a log file
// everything is discarded. The returned closer must be closed on exit.
func (c Config) NewLogger() (*slog.Logger, io.Closer, error) {
	if c.LogFile == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}

	if dir := filepath.Dir(c.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, c.LogLevel), f, nil
}

func newLogger(w io.Writer, level LogLevel) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	return slog.New(h).With("run_id", uuid.NewString())
}
