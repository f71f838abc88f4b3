// Package practice runs a spelling practice session: it owns the session
// state, feeds typed and spoken answers through one verification path,
// and drives the timed advance to the next word.
package practice

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/abhisek/spellz/internal/speech"
	"github.com/abhisek/spellz/internal/spelling"
	"github.com/abhisek/spellz/internal/words"
)

// DefaultAdvanceDelay is how long a correct answer stays on screen before
// the next word.
const DefaultAdvanceDelay = 2 * time.Second

var (
	ErrEmptyWordList = errors.New("word list is empty")
	ErrInvalidEntry  = errors.New("word list entry has no word")
)

// Options configures a Coordinator.
type Options struct {
	// Recognizer captures spoken answers. Nil means the host has no speech
	// capture; toggling listening then reports FeedbackUnsupported.
	Recognizer speech.Recognizer

	// Synthesizer speaks words and feedback. Defaults to speech.Silent.
	Synthesizer speech.Synthesizer

	// Clock schedules the advance after a correct answer. Defaults to the
	// system clock.
	Clock clockwork.Clock

	// AdvanceDelay defaults to DefaultAdvanceDelay.
	AdvanceDelay time.Duration

	// Voice is passed to every Speak call. Defaults to speech.DefaultOptions.
	Voice speech.Options

	// TypedAffirmation and SpokenAffirmation are spoken after a correct
	// typed or spoken answer.
	TypedAffirmation  string
	SpokenAffirmation string

	// Logger defaults to a discarding logger.
	Logger *slog.Logger

	// OnChange is called after every state change, outside the internal
	// lock. Read the new state with Snapshot.
	OnChange func()
}

// Affirmations returns the default praise phrases, addressed to name when
// it is not empty.
func Affirmations(name string) (typed, spoken string) {
	if name == "" {
		return "Good job!", "Nice job!"
	}
	return fmt.Sprintf("Good job %s!", name), fmt.Sprintf("Nice job %s!", name)
}

type source int

const (
	sourceTyped source = iota
	sourceSpoken
)

func (s source) String() string {
	if s == sourceSpoken {
		return "spoken"
	}
	return "typed"
}

// capture tracks the one speech capture that may be open at a time.
type capture struct {
	id         uint64
	generation uint64
	stopping   bool
	// failed is set by OnError. The capture stays open until OnStop.
	failed bool
}

// effects are collaborator calls collected under the lock and run after it
// is released, so collaborators may call back into the Coordinator.
type effects struct {
	abort   bool
	speak   []string
	changed bool
}

// Coordinator serializes every operation and collaborator callback of one
// practice run. All methods are safe for concurrent use.
type Coordinator struct {
	mu      sync.Mutex
	entries []words.Entry
	opts    Options
	log     *slog.Logger

	state     State
	advance   clockwork.Timer
	capture   *capture
	captureID uint64
	closed    bool
}

// New creates a Coordinator positioned on the first word of entries.
func New(entries []words.Entry, opts Options) (*Coordinator, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyWordList
	}
	for i, e := range entries {
		if spelling.Normalize(e.Word) == "" {
			return nil, fmt.Errorf("%w (position %d)", ErrInvalidEntry, i+1)
		}
	}

	if opts.Synthesizer == nil {
		opts.Synthesizer = speech.Silent{}
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.AdvanceDelay <= 0 {
		opts.AdvanceDelay = DefaultAdvanceDelay
	}
	if opts.Voice == (speech.Options{}) {
		opts.Voice = speech.DefaultOptions()
	}
	typed, spoken := Affirmations("")
	if opts.TypedAffirmation == "" {
		opts.TypedAffirmation = typed
	}
	if opts.SpokenAffirmation == "" {
		opts.SpokenAffirmation = spoken
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	list := make([]words.Entry, len(entries))
	copy(list, entries)

	return &Coordinator{
		entries: list,
		opts:    opts,
		log:     logger,
	}, nil
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State: c.state,
		Entry: c.entries[c.state.WordIndex],
		Total: len(c.entries),

		Capturing: c.capture != nil,
	}
}

// UpdateTyped replaces the answer attempt without checking it. Edits are
// ignored while an advance is pending and after the run is completed.
func (c *Coordinator) UpdateTyped(text string) {
	c.mu.Lock()
	if c.closed || c.state.Correct || c.state.Completed || c.state.Input == text {
		c.mu.Unlock()
		return
	}
	c.state.Input = text
	c.mu.Unlock()
	c.run(effects{changed: true})
}

// SubmitTyped checks the typed answer attempt.
func (c *Coordinator) SubmitTyped() Outcome {
	c.mu.Lock()
	var fx effects
	out := c.decide(sourceTyped, &fx)
	c.mu.Unlock()
	c.run(fx)
	return out
}

// Clear empties the answer attempt and the feedback. It does nothing while
// an advance is pending or after the run is completed.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	if c.closed || c.state.Completed || c.state.Correct {
		c.mu.Unlock()
		return
	}
	c.state.Input = ""
	c.state.Feedback = FeedbackNone
	c.mu.Unlock()
	c.run(effects{changed: true})
}

// SpeakTarget says the current word out loud.
func (c *Coordinator) SpeakTarget() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	word := c.entries[c.state.WordIndex].Word
	c.mu.Unlock()
	c.run(effects{speak: []string{word}})
}

// Reset returns to the first word with an empty state. A pending advance is
// cancelled and an open capture is aborted.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	var fx effects
	c.cancelAdvance()
	c.dropCapture(&fx)
	c.state = State{Generation: c.state.Generation + 1}
	fx.changed = true
	c.log.Debug("session reset", "generation", c.state.Generation)
	c.mu.Unlock()
	c.run(fx)
}

// Close tears the session down. Pending work is cancelled and every later
// call or callback is ignored. Close is idempotent.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	var fx effects
	c.cancelAdvance()
	c.dropCapture(&fx)
	c.mu.Unlock()
	c.run(fx)
}

// decide evaluates the current Input against the current word. Typed and
// spoken answers both end up here. Must be called with c.mu held.
func (c *Coordinator) decide(src source, fx *effects) Outcome {
	if c.closed || c.state.Completed || c.state.Correct {
		return OutcomeIgnored
	}

	entry := c.entries[c.state.WordIndex]
	res := spelling.Check(c.state.Input, entry.Word)
	fx.changed = true

	if !res.Match {
		c.state.Feedback = FeedbackRetry
		c.state.Correct = false
		fx.speak = append(fx.speak, entry.Word)
		c.log.Debug("answer rejected", "source", src, "word_index", c.state.WordIndex)
		return OutcomeRetry
	}

	c.state.Feedback = FeedbackCorrect
	c.state.Correct = true
	if src == sourceSpoken {
		fx.speak = append(fx.speak, c.opts.SpokenAffirmation)
	} else {
		fx.speak = append(fx.speak, c.opts.TypedAffirmation)
	}
	c.scheduleAdvance()
	c.log.Debug("answer accepted", "source", src, "word_index", c.state.WordIndex)
	return OutcomeCorrect
}

// scheduleAdvance arms the advance timer for the current generation.
// Must be called with c.mu held.
func (c *Coordinator) scheduleAdvance() {
	c.cancelAdvance()
	gen := c.state.Generation
	c.advance = c.opts.Clock.AfterFunc(c.opts.AdvanceDelay, func() {
		c.onAdvance(gen)
	})
}

// cancelAdvance stops a pending advance. Must be called with c.mu held.
func (c *Coordinator) cancelAdvance() {
	if c.advance != nil {
		c.advance.Stop()
		c.advance = nil
	}
}

func (c *Coordinator) onAdvance(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.state.Generation || !c.state.Correct {
		c.log.Debug("dropped stale advance", "generation", gen)
		c.mu.Unlock()
		return
	}
	c.advance = nil

	var fx effects
	c.dropCapture(&fx)
	if c.state.WordIndex >= len(c.entries)-1 {
		c.state.Feedback = FeedbackCompleted
		c.state.Correct = false
		c.state.Completed = true
		c.log.Info("word list completed", "words", len(c.entries))
	} else {
		c.state.WordIndex++
		c.state.Input = ""
		c.state.Feedback = FeedbackNone
		c.state.Correct = false
		c.state.Generation++
		c.log.Debug("advanced", "word_index", c.state.WordIndex)
	}
	fx.changed = true
	c.mu.Unlock()
	c.run(fx)
}

// run performs collected collaborator calls. Must be called without c.mu.
func (c *Coordinator) run(fx effects) {
	if fx.abort && c.opts.Recognizer != nil {
		c.opts.Recognizer.Abort()
	}
	for _, text := range fx.speak {
		c.opts.Synthesizer.Speak(text, c.opts.Voice)
	}
	if fx.changed && c.opts.OnChange != nil {
		c.opts.OnChange()
	}
}
