package speech_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/abhisek/spellz/internal/speech"
	"github.com/abhisek/spellz/internal/speech/mock"
)

func TestThrottle_DropsBurst(t *testing.T) {
	synth := &mock.Synthesizer{}
	s := speech.Throttle(synth, rate.NewLimiter(rate.Every(time.Hour), 2))

	for i := 0; i < 5; i++ {
		s.Speak("because", speech.DefaultOptions())
	}

	assert.Equal(t, []string{"because", "because"}, synth.Texts())
}

func TestHandlerFuncs_NilFieldsIgnored(t *testing.T) {
	var h speech.Handler = speech.HandlerFuncs{}
	h.OnStart()
	h.OnStop()
	h.OnError(speech.ErrNoSpeech)
	h.OnResult("cat")

	var got string
	h = speech.HandlerFuncs{Result: func(s string) { got = s }}
	h.OnResult("cat")
	assert.Equal(t, "cat", got)
}
