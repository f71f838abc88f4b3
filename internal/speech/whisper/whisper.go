// Package whisper transcribes utterances locally with whisper.cpp. The
// whisper.cpp static library and headers must be available at link time
// via LIBRARY_PATH and C_INCLUDE_PATH.
package whisper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/abhisek/spellz/internal/audio"
	"github.com/abhisek/spellz/internal/speech"
)

var _ speech.Transcriber = (*Transcriber)(nil)

// Transcriber runs a whisper.cpp model. The model is loaded once and a
// fresh context is created per utterance.
type Transcriber struct {
	model    whisperlib.Model
	language string
	logger   *slog.Logger

	// whisper contexts share model state; one inference at a time.
	mu sync.Mutex
}

type Option func(*Transcriber)

func WithLanguage(lang string) Option {
	return func(t *Transcriber) { t.language = lang }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Transcriber) { t.logger = l }
}

// New loads the model at modelPath.
func New(modelPath string, opts ...Option) (*Transcriber, error) {
	if modelPath == "" {
		return nil, errors.New("whisper: model path must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: load model %q: %w", modelPath, err)
	}

	t := &Transcriber{model: model, language: "en", logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(t)
	}
	return t, nil
}

func (t *Transcriber) Close() error {
	if t.model != nil {
		return t.model.Close()
	}
	return nil
}

// Transcribe runs inference on samples, which must be 16 kHz mono.
// Inference cannot be interrupted; a cancelled ctx only stops the wait.
func (t *Transcriber) Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error) {
	if sampleRate != audio.DefaultSampleRate {
		return "", fmt.Errorf("whisper: sample rate %d not supported, need %d", sampleRate, audio.DefaultSampleRate)
	}

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := t.infer(audio.Float32(samples))
		ch <- result{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}

func (t *Transcriber) infer(samples []float32) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	wctx, err := t.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("whisper: create context: %w", err)
	}
	if err := wctx.SetLanguage(t.language); err != nil {
		t.logger.Warn("whisper: failed to set language, using default", "language", t.language, "error", err)
	}
	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper: process audio: %w", err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("whisper: read segment: %w", err)
		}
		text := strings.TrimSpace(segment.Text)
		// Non-speech annotations such as [BLANK_AUDIO] or (coughs).
		if text == "" || strings.HasPrefix(text, "[") || strings.HasPrefix(text, "(") {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " "), nil
}
