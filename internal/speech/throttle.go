package speech

import (
	"golang.org/x/time/rate"
)

// throttled drops speak requests that exceed a rate limit, so a held-down
// key cannot queue up a long backlog of audio.
type throttled struct {
	inner   Synthesizer
	limiter *rate.Limiter
}

// Throttle wraps s so that at most burst requests are spoken at once and
// further requests are admitted at the limiter's rate. Excess requests are
// dropped, not delayed.
func Throttle(s Synthesizer, limiter *rate.Limiter) Synthesizer {
	return &throttled{inner: s, limiter: limiter}
}

func (t *throttled) Speak(text string, opts Options) {
	if !t.limiter.Allow() {
		return
	}
	t.inner.Speak(text, opts)
}
