package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

var (
	paMu   sync.Mutex
	paRefs int
)

// acquire initializes PortAudio on first use. Each acquire must be
// paired with release.
func acquire() error {
	paMu.Lock()
	defer paMu.Unlock()
	if paRefs == 0 {
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("initialize portaudio: %w", err)
		}
	}
	paRefs++
	return nil
}

func release() {
	paMu.Lock()
	defer paMu.Unlock()
	paRefs--
	if paRefs == 0 {
		_ = portaudio.Terminate()
	}
}

// Microphone reads frames from the default input device.
type Microphone struct {
	stream *portaudio.Stream
	buf    []int16
	closed bool
}

// OpenMicrophone opens the default input device at rate with frames of
// frameSize samples.
func OpenMicrophone(rate, frameSize int) (*Microphone, error) {
	if err := acquire(); err != nil {
		return nil, err
	}

	buf := make([]int16, frameSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(rate), len(buf), buf)
	if err != nil {
		release()
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	return &Microphone{stream: stream, buf: buf}, nil
}

// MicrophoneOpener returns an OpenFunc for the default input device.
func MicrophoneOpener(cfg SegmentConfig) OpenFunc {
	return func() (Source, error) {
		return OpenMicrophone(cfg.SampleRate, cfg.FrameSize)
	}
}

func (m *Microphone) Start() error {
	return m.stream.Start()
}

func (m *Microphone) Read() ([]int16, error) {
	if m.closed {
		return nil, ErrClosed
	}
	if err := m.stream.Read(); err != nil && err != portaudio.InputOverflowed {
		return nil, fmt.Errorf("read input stream: %w", err)
	}
	frame := make([]int16, len(m.buf))
	copy(frame, m.buf)
	return frame, nil
}

func (m *Microphone) Stop() error {
	return m.stream.Stop()
}

func (m *Microphone) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	err := m.stream.Close()
	release()
	return err
}
