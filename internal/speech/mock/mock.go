// Package mock provides test doubles for the speech interfaces.
//
// Recognizer never emits events on its own: tests drive a capture by
// calling methods on the Handler returned from Last.
//
//	rec := &mock.Recognizer{}
//	coord.ToggleListening()
//	rec.Last().OnStart()
//	rec.Last().OnResult("because")
package mock

import (
	"sync"

	"github.com/abhisek/spellz/internal/speech"
)

var (
	_ speech.Recognizer  = (*Recognizer)(nil)
	_ speech.Synthesizer = (*Synthesizer)(nil)
)

// Recognizer is a mock implementation of speech.Recognizer.
type Recognizer struct {
	mu sync.Mutex

	// StartErr, if non-nil, is returned from Start and no handler is kept.
	StartErr error

	// StopEmitsStop makes Stop deliver OnStop to the running handler
	// synchronously, like a recognizer that finishes instantly.
	StopEmitsStop bool

	handlers   []speech.Handler
	running    speech.Handler
	stopCalls  int
	abortCalls int
}

// Start records h as the running capture.
func (r *Recognizer) Start(h speech.Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.StartErr != nil {
		return r.StartErr
	}
	r.handlers = append(r.handlers, h)
	r.running = h
	return nil
}

// Stop records the call and optionally emits OnStop.
func (r *Recognizer) Stop() {
	r.mu.Lock()
	r.stopCalls++
	h := r.running
	emit := r.StopEmitsStop
	if emit {
		r.running = nil
	}
	r.mu.Unlock()

	if emit && h != nil {
		h.OnStop()
	}
}

// Abort records the call and forgets the running capture.
func (r *Recognizer) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.abortCalls++
	r.running = nil
}

// Last returns the handler passed to the most recent successful Start.
func (r *Recognizer) Last() speech.Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.handlers) == 0 {
		return nil
	}
	return r.handlers[len(r.handlers)-1]
}

// Starts returns the number of successful Start calls.
func (r *Recognizer) Starts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}

// StopCalls returns the number of Stop calls.
func (r *Recognizer) StopCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopCalls
}

// AbortCalls returns the number of Abort calls.
func (r *Recognizer) AbortCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.abortCalls
}

// Utterance is one recorded Speak call.
type Utterance struct {
	Text    string
	Options speech.Options
}

// Synthesizer is a mock implementation of speech.Synthesizer that records
// every request.
type Synthesizer struct {
	mu     sync.Mutex
	spoken []Utterance
}

func (s *Synthesizer) Speak(text string, opts speech.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, Utterance{Text: text, Options: opts})
}

// Spoken returns a copy of all recorded requests.
func (s *Synthesizer) Spoken() []Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Utterance, len(s.spoken))
	copy(out, s.spoken)
	return out
}

// Texts returns the text of every recorded request.
func (s *Synthesizer) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.spoken))
	for i, u := range s.spoken {
		out[i] = u.Text
	}
	return out
}

// Last returns the most recent text, or "" if nothing was spoken.
func (s *Synthesizer) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.spoken) == 0 {
		return ""
	}
	return s.spoken[len(s.spoken)-1].Text
}
