package practice

import (
	"errors"

	"github.com/abhisek/spellz/internal/speech"
	"github.com/abhisek/spellz/internal/spelling"
)

// ToggleListening starts a speech capture, or asks the open one to stop.
// A capture that already failed is left to finish on its own.
//
// Without a recognizer the feedback becomes FeedbackUnsupported. Nothing is
// started while an advance is pending or after the run is completed.
func (c *Coordinator) ToggleListening() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if c.capture != nil {
		if c.capture.failed {
			// Already failed; its OnStop is on the way.
			c.mu.Unlock()
			return
		}
		c.capture.stopping = true
		c.log.Debug("stopping capture", "capture_id", c.capture.id)
		c.mu.Unlock()
		c.opts.Recognizer.Stop()
		return
	}

	if c.state.Completed || c.state.Correct {
		c.mu.Unlock()
		return
	}

	rec := c.opts.Recognizer
	if rec == nil {
		c.state.Feedback = FeedbackUnsupported
		c.mu.Unlock()
		c.run(effects{changed: true})
		return
	}

	c.captureID++
	cp := &capture{id: c.captureID, generation: c.state.Generation}
	c.capture = cp
	c.mu.Unlock()

	err := rec.Start(&captureHandler{c: c, id: cp.id, generation: cp.generation})
	if err == nil {
		return
	}

	c.mu.Lock()
	if c.capture != cp {
		// Reset, Close or an advance already replaced this capture.
		c.mu.Unlock()
		return
	}
	c.capture = nil
	c.state.Listening = false
	if errors.Is(err, speech.ErrUnavailable) {
		c.state.Feedback = FeedbackUnsupported
		c.log.Info("speech capture unavailable", "error", err)
	} else {
		c.state.Feedback = FeedbackRetry
		c.log.Warn("speech capture failed to start", "error", err)
	}
	c.mu.Unlock()
	c.run(effects{changed: true})
}

// CancelListening aborts the open capture, if any. A transcript still on its
// way is discarded.
func (c *Coordinator) CancelListening() {
	c.mu.Lock()
	if c.closed || c.capture == nil {
		c.mu.Unlock()
		return
	}
	var fx effects
	c.dropCapture(&fx)
	fx.changed = true
	c.mu.Unlock()
	c.run(fx)
}

// dropCapture forgets the open capture and asks the recognizer to abort it.
// Events from the dropped capture are ignored. Must be called with c.mu held.
func (c *Coordinator) dropCapture(fx *effects) {
	if c.capture == nil {
		return
	}
	c.log.Debug("aborting capture", "capture_id", c.capture.id)
	c.capture = nil
	c.state.Listening = false
	if c.state.Feedback == FeedbackListening {
		c.state.Feedback = FeedbackNone
	}
	fx.abort = true
}

// captureHandler receives events for one capture. Events are applied only
// while that capture is still the open one.
type captureHandler struct {
	c          *Coordinator
	id         uint64
	generation uint64
}

var _ speech.Handler = (*captureHandler)(nil)

// lock acquires c.mu and reports whether the event is current. On false the
// lock has already been released.
func (h *captureHandler) lock(event string) bool {
	c := h.c
	c.mu.Lock()
	if c.closed || c.capture == nil || c.capture.id != h.id || c.state.Generation != h.generation {
		c.log.Debug("dropped stale capture event", "event", event, "capture_id", h.id, "generation", h.generation)
		c.mu.Unlock()
		return false
	}
	return true
}

func (h *captureHandler) OnStart() {
	if !h.lock("start") {
		return
	}
	c := h.c
	c.state.Listening = true
	if !c.state.Correct && !c.state.Completed {
		c.state.Feedback = FeedbackListening
	}
	c.mu.Unlock()
	c.run(effects{changed: true})
}

func (h *captureHandler) OnStop() {
	if !h.lock("stop") {
		return
	}
	c := h.c
	c.capture = nil
	c.state.Listening = false
	if c.state.Feedback == FeedbackListening {
		c.state.Feedback = FeedbackNone
	}
	c.mu.Unlock()
	c.run(effects{changed: true})
}

func (h *captureHandler) OnError(err error) {
	if !h.lock("error") {
		return
	}
	c := h.c
	c.capture.failed = true
	c.state.Listening = false
	switch {
	case c.state.Correct || c.state.Completed:
	case errors.Is(err, speech.ErrUnavailable):
		c.state.Feedback = FeedbackUnsupported
	default:
		c.state.Feedback = FeedbackRetry
	}
	c.log.Warn("speech capture error", "capture_id", h.id, "error", err)
	c.mu.Unlock()
	c.run(effects{changed: true})
}

func (h *captureHandler) OnResult(transcript string) {
	if !h.lock("result") {
		return
	}
	c := h.c
	if c.capture.failed {
		c.log.Debug("ignored result after capture error", "capture_id", h.id)
		c.mu.Unlock()
		return
	}
	if c.state.Correct || c.state.Completed {
		c.log.Debug("ignored result while advance pending", "capture_id", h.id)
		c.mu.Unlock()
		return
	}
	c.state.Input = spelling.Normalize(transcript)
	var fx effects
	c.decide(sourceSpoken, &fx)
	c.mu.Unlock()
	c.run(fx)
}
