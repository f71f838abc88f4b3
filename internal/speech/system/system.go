// Package system speaks through the host's command-line synthesizer:
// say on macOS, espeak-ng or espeak elsewhere.
package system

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/abhisek/spellz/internal/speech"
)

var _ speech.Synthesizer = (*Synthesizer)(nil)

// ErrNoSynthesizer is returned when no supported command is installed.
var ErrNoSynthesizer = errors.New("no speech synthesizer command found")

// command builds the argument list for one utterance.
type command struct {
	name string
	args func(text string, opts speech.Options) []string
}

// normal speaking rates in words per minute.
const (
	sayWPM    = 175
	espeakWPM = 160
)

var commands = map[string]command{
	"say": {"say", func(text string, o speech.Options) []string {
		return []string{"-r", strconv.Itoa(wpm(sayWPM, o.Rate)), "--", text}
	}},
	"espeak-ng": {"espeak-ng", espeakArgs},
	"espeak":    {"espeak", espeakArgs},
}

func espeakArgs(text string, o speech.Options) []string {
	args := []string{"-s", strconv.Itoa(wpm(espeakWPM, o.Rate))}
	if o.Locale != "" {
		args = append(args, "-v", o.Locale)
	}
	return append(args, "--", text)
}

func wpm(base int, rate float64) int {
	if rate <= 0 {
		return base
	}
	return int(float64(base) * rate)
}

type utterance struct {
	text string
	opts speech.Options
}

// Synthesizer runs one command per utterance, in order.
type Synthesizer struct {
	cmd    command
	logger *slog.Logger

	queue  chan utterance
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// candidates lists commands to try on this OS, best first.
func candidates() []string {
	if runtime.GOOS == "darwin" {
		return []string{"say", "espeak-ng", "espeak"}
	}
	return []string{"espeak-ng", "espeak"}
}

// New finds a synthesizer command on PATH.
func New(logger *slog.Logger) (*Synthesizer, error) {
	for _, name := range candidates() {
		if _, err := exec.LookPath(name); err == nil {
			return newWith(commands[name], logger), nil
		}
	}
	return nil, ErrNoSynthesizer
}

func newWith(cmd command, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Synthesizer{
		cmd:    cmd,
		logger: logger.With("component", "tts", "command", cmd.name),
		queue:  make(chan utterance, 8),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Synthesizer) Speak(text string, opts speech.Options) {
	if s.ctx.Err() != nil {
		return
	}
	select {
	case s.queue <- utterance{text, opts}:
	default:
		s.logger.Debug("speech queue full, dropping utterance", "text", text)
	}
}

func (s *Synthesizer) Close() error {
	s.cancel()
	<-s.done
	return nil
}

func (s *Synthesizer) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case u := <-s.queue:
			cmd := exec.CommandContext(s.ctx, s.cmd.name, s.cmd.args(u.text, u.opts)...)
			if out, err := cmd.CombinedOutput(); err != nil && s.ctx.Err() == nil {
				s.logger.Warn("speak failed", "text", u.text, "error", fmt.Errorf("%w: %s", err, out))
			}
		}
	}
}
