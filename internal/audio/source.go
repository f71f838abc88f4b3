package audio

import (
	"errors"
	"io"
)

// ErrClosed is returned when reading from a closed source.
var ErrClosed = errors.New("audio source closed")

// Source delivers fixed-size frames of mono 16-bit samples. Read blocks
// until a frame is available and returns io.EOF when the source is
// exhausted.
type Source interface {
	Start() error
	Read() ([]int16, error)
	Stop() error
	Close() error
}

// OpenFunc opens a fresh source for one capture.
type OpenFunc func() (Source, error)

// SampleSource replays fixed samples as frames. It stands in for the
// microphone when transcribing a recording.
type SampleSource struct {
	samples   []int16
	frameSize int
	pos       int
	started   bool
	closed    bool
}

func NewSampleSource(samples []int16, frameSize int) *SampleSource {
	return &SampleSource{samples: samples, frameSize: frameSize}
}

func (s *SampleSource) Start() error {
	if s.closed {
		return ErrClosed
	}
	s.started = true
	return nil
}

func (s *SampleSource) Read() ([]int16, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if !s.started {
		return nil, errors.New("audio source not started")
	}
	if s.pos >= len(s.samples) {
		return nil, io.EOF
	}
	end := min(s.pos+s.frameSize, len(s.samples))
	frame := make([]int16, s.frameSize)
	copy(frame, s.samples[s.pos:end])
	s.pos = end
	return frame, nil
}

func (s *SampleSource) Stop() error {
	s.started = false
	return nil
}

func (s *SampleSource) Close() error {
	s.closed = true
	return nil
}
