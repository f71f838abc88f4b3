// Package backend assembles the speech recognizer and synthesizer for the
// configured speech backend.
package backend

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	"github.com/abhisek/spellz/internal/audio"
	"github.com/abhisek/spellz/internal/config"
	"github.com/abhisek/spellz/internal/speech"
	"github.com/abhisek/spellz/internal/speech/capture"
	"github.com/abhisek/spellz/internal/speech/openai"
	"github.com/abhisek/spellz/internal/speech/system"
	"github.com/abhisek/spellz/internal/speech/whisper"
)

// Backends is the assembled speech stack. Recognizer is nil when speech
// capture is not available.
type Backends struct {
	Recognizer  speech.Recognizer
	Synthesizer speech.Synthesizer

	// Transcriber is the speech-to-text engine behind Recognizer, nil
	// when there is none.
	Transcriber speech.Transcriber

	// Listen and Speak name the chosen implementations for display.
	Listen string
	Speak  string

	closers []io.Closer
}

// Close releases devices and background workers.
func (b *Backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i].Close())
	}
	return errors.Join(errs...)
}

func (b *Backends) own(c io.Closer) {
	b.closers = append(b.closers, c)
}

// Seams for tests.
var (
	newSystem  = func(l *slog.Logger) (speech.Synthesizer, error) { return system.New(l) }
	newWhisper = func(path string, l *slog.Logger) (speech.Transcriber, error) {
		return whisper.New(path, whisper.WithLogger(l))
	}
)

// speakLimit admits a short burst of utterances, then one per interval.
func speakLimit() *rate.Limiter {
	return rate.NewLimiter(rate.Every(300*time.Millisecond), 3)
}

// Open builds the backends for cfg. With SpeechAuto it prefers OpenAI
// when a key is configured, then a local whisper model, and falls back
// to the system synthesizer without speech capture.
func Open(cfg config.Config, logger *slog.Logger) (*Backends, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Backends{Listen: "none", Speak: "none"}

	var (
		tr    speech.Transcriber
		synth speech.Synthesizer
		err   error
	)

	switch cfg.Speech {
	case config.SpeechNone:

	case config.SpeechOpenAI:
		tr, synth, err = openAI(cfg, logger, b)
		if err != nil {
			return nil, err
		}

	case config.SpeechWhisper:
		t, err := newWhisper(cfg.WhisperModel, logger)
		if err != nil {
			return nil, err
		}
		tr = t
		b.Listen = "whisper"
		if c, ok := t.(io.Closer); ok {
			b.own(c)
		}
		synth = systemOrSilent(logger, b)

	case config.SpeechSystem:
		s, err := newSystem(logger)
		if err != nil {
			return nil, err
		}
		synth = s
		b.Speak = "system"
		if c, ok := s.(io.Closer); ok {
			b.own(c)
		}

	case config.SpeechAuto:
		switch {
		case cfg.OpenAIKey != "":
			tr, synth, err = openAI(cfg, logger, b)
			if err != nil {
				return nil, err
			}
		case cfg.WhisperModel != "":
			t, err := newWhisper(cfg.WhisperModel, logger)
			if err != nil {
				logger.Warn("whisper model unavailable, speech capture disabled", "error", err)
			} else {
				tr = t
				b.Listen = "whisper"
				if c, ok := t.(io.Closer); ok {
					b.own(c)
				}
			}
			synth = systemOrSilent(logger, b)
		default:
			synth = systemOrSilent(logger, b)
		}

	default:
		return nil, fmt.Errorf("unknown speech backend %q", cfg.Speech)
	}

	if tr != nil {
		b.Transcriber = tr
		seg := audio.DefaultSegmentConfig()
		cc := capture.Config{
			Open:        audio.MicrophoneOpener(seg),
			Transcriber: tr,
			Segment:     seg,
			Logger:      logger,
		}
		if cfg.ArchiveDir != "" {
			cc.Archive = afero.NewOsFs()
			cc.ArchiveDir = cfg.ArchiveDir
		}
		rec := capture.New(cc)
		b.Recognizer = rec
		b.own(rec)
	}

	if synth == nil {
		synth = speech.Silent{}
	}
	b.Synthesizer = speech.Throttle(synth, speakLimit())

	logger.Info("speech backends ready", "listen", b.Listen, "speak", b.Speak)
	return b, nil
}

func openAI(cfg config.Config, logger *slog.Logger, b *Backends) (speech.Transcriber, speech.Synthesizer, error) {
	opts := []openai.Option{openai.WithVoice(cfg.Voice), openai.WithLogger(logger)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
	}
	tr, err := openai.NewTranscriber(cfg.OpenAIKey, opts...)
	if err != nil {
		return nil, nil, err
	}
	synth, err := openai.NewSynthesizer(cfg.OpenAIKey, audio.NewSpeaker(openai.PCMSampleRate), opts...)
	if err != nil {
		return nil, nil, err
	}
	b.own(synth)
	b.Listen, b.Speak = "openai", "openai"
	return tr, synth, nil
}

func systemOrSilent(logger *slog.Logger, b *Backends) speech.Synthesizer {
	s, err := newSystem(logger)
	if err != nil {
		logger.Info("no system speech synthesizer", "error", err)
		return nil
	}
	b.Speak = "system"
	if c, ok := s.(io.Closer); ok {
		b.own(c)
	}
	return s
}
