// Package speech defines the speech capture and speech output capabilities
// the practice session talks to.
//
// A Recognizer captures one utterance per Start and reports what happened
// through the Handler passed to that Start. A Synthesizer renders text
// audibly and never reports back.
package speech

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrUnavailable means the host cannot capture speech at all (no
	// backend configured, no input device). Retrying will not help.
	ErrUnavailable = errors.New("speech capture unavailable")

	// ErrNoSpeech means the capture window closed without any speech.
	ErrNoSpeech = errors.New("no speech detected")

	// ErrBusy means a capture is already running.
	ErrBusy = errors.New("speech capture already running")
)

// Handler receives the events of one capture started with Recognizer.Start.
// Events may arrive on any goroutine.
type Handler interface {
	// OnStart reports that audio capture began.
	OnStart()

	// OnStop reports that the capture ended. It is the last event of a
	// capture unless the capture was aborted.
	OnStop()

	// OnError reports a failed capture.
	OnError(err error)

	// OnResult delivers the transcribed phrase.
	OnResult(transcript string)
}

// Recognizer is a speech-to-text capture capability.
type Recognizer interface {
	// Start begins capturing one utterance. It returns ErrUnavailable when
	// capture is impossible on this host and ErrBusy when a capture is
	// already running. Events for this capture go to h.
	Start(h Handler) error

	// Stop ends the running capture gracefully: audio captured so far is
	// still transcribed and OnStop follows. No-op when nothing is running.
	Stop()

	// Abort cancels the running capture. No further events are delivered
	// for it. No-op when nothing is running.
	Abort()
}

// Transcriber turns one utterance of mono 16-bit samples into text.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error)
}

// Options controls how text is spoken.
type Options struct {
	// Rate is the speaking rate; 1.0 is normal speed.
	Rate float64

	// Locale is a BCP-47 tag such as "en-US".
	Locale string
}

// DefaultOptions is slightly slower than normal speech for young learners.
func DefaultOptions() Options {
	return Options{Rate: 0.9, Locale: "en-US"}
}

// Synthesizer is a text-to-speech output capability. Speak returns
// immediately; rendering happens in the background.
type Synthesizer interface {
	Speak(text string, opts Options)
}

// Silent is a Synthesizer that discards everything.
type Silent struct{}

func (Silent) Speak(string, Options) {}

// HandlerFuncs adapts plain functions to Handler. Nil fields are ignored.
type HandlerFuncs struct {
	Start  func()
	Stop   func()
	Error  func(err error)
	Result func(transcript string)
}

func (h HandlerFuncs) OnStart() {
	if h.Start != nil {
		h.Start()
	}
}

func (h HandlerFuncs) OnStop() {
	if h.Stop != nil {
		h.Stop()
	}
}

func (h HandlerFuncs) OnError(err error) {
	if h.Error != nil {
		h.Error(err)
	}
}

func (h HandlerFuncs) OnResult(transcript string) {
	if h.Result != nil {
		h.Result(transcript)
	}
}

// CleanTranscript strips the whitespace and sentence punctuation that
// transcription engines wrap around a single spoken word.
func CleanTranscript(text string) string {
	return strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '\'')
	})
}
