package audio

import "time"

const (
	DefaultSampleRate = 16000
	DefaultFrameSize  = 1024
)

// SegmentConfig controls how an utterance is cut out of a stream of frames.
type SegmentConfig struct {
	SampleRate int
	FrameSize  int

	// MinLevel is the RMS level below which a frame counts as silence.
	MinLevel float64

	// Sensitivity is how far flux must rise above the noise floor to
	// count as a speech onset.
	Sensitivity float64

	// PreRoll is how much audio before the onset is kept.
	PreRoll time.Duration

	// QuietTime of silence after speech ends the utterance.
	QuietTime time.Duration

	// MaxDuration caps the utterance length.
	MaxDuration time.Duration

	// NoSpeechTimeout gives up when nothing was heard for this long.
	NoSpeechTimeout time.Duration
}

// DefaultSegmentConfig suits a child saying one word.
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{
		SampleRate:      DefaultSampleRate,
		FrameSize:       DefaultFrameSize,
		MinLevel:        0.02,
		Sensitivity:     1.75,
		PreRoll:         300 * time.Millisecond,
		QuietTime:       800 * time.Millisecond,
		MaxDuration:     8 * time.Second,
		NoSpeechTimeout: 6 * time.Second,
	}
}

func (c SegmentConfig) samples(d time.Duration) int {
	return int(d.Seconds() * float64(c.SampleRate))
}

// Segmenter finds one utterance in a stream of frames. Time is measured
// in samples, not wall clock, so it behaves the same on any source.
type Segmenter struct {
	cfg    SegmentConfig
	flux   *FluxDetector
	pre    *Ring
	floor  float64
	primed bool

	heard   bool
	seen    int
	silence int
	speech  []int16
}

func NewSegmenter(cfg SegmentConfig) *Segmenter {
	return &Segmenter{
		cfg:  cfg,
		flux: NewFluxDetector(cfg.FrameSize),
		pre:  NewRing(max(cfg.samples(cfg.PreRoll), cfg.FrameSize)),
	}
}

// Push feeds one frame and reports whether the utterance is complete,
// either because speech ended or because a limit was reached.
func (s *Segmenter) Push(frame []int16) bool {
	s.seen += len(frame)
	level := Level(frame)
	flux := s.flux.Flux(frame)

	if !s.heard {
		s.pre.Add(frame)
		if level >= s.cfg.MinLevel && (!s.primed || flux >= s.floor*s.cfg.Sensitivity) {
			s.heard = true
			s.speech = s.pre.Read()
			return false
		}
		if !s.primed {
			s.floor, s.primed = flux, true
		} else {
			s.floor = 0.9*s.floor + 0.1*flux
		}
		return s.cfg.NoSpeechTimeout > 0 && s.seen >= s.cfg.samples(s.cfg.NoSpeechTimeout)
	}

	s.speech = append(s.speech, frame...)
	if level < s.cfg.MinLevel {
		s.silence += len(frame)
	} else {
		s.silence = 0
	}
	if s.silence >= s.cfg.samples(s.cfg.QuietTime) {
		return true
	}
	return s.cfg.MaxDuration > 0 && len(s.speech) >= s.cfg.samples(s.cfg.MaxDuration)
}

// Heard reports whether speech was detected.
func (s *Segmenter) Heard() bool {
	return s.heard
}

// Samples returns the utterance including pre-roll, with trailing silence
// trimmed.
func (s *Segmenter) Samples() []int16 {
	end := len(s.speech) - s.silence
	if end < 0 {
		end = 0
	}
	return s.speech[:end]
}
