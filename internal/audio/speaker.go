package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gordonklaus/portaudio"
)

// Speaker plays raw 16-bit little-endian mono PCM on the default output
// device.
type Speaker struct {
	Rate      int
	FrameSize int
}

func NewSpeaker(rate int) *Speaker {
	return &Speaker{Rate: rate, FrameSize: 1024}
}

// Play streams PCM from r until EOF or ctx is done.
func (s *Speaker) Play(ctx context.Context, r io.Reader) error {
	if err := acquire(); err != nil {
		return err
	}
	defer release()

	buf := make([]int16, s.FrameSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(s.Rate), len(buf), buf)
	if err != nil {
		return fmt.Errorf("open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start output stream: %w", err)
	}
	defer stream.Stop()

	raw := make([]byte, len(buf)*2)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := io.ReadFull(r, raw)
		if n > 0 {
			clear(buf)
			for i := 0; i < n/2; i++ {
				buf[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
			}
			if werr := stream.Write(); werr != nil && werr != portaudio.OutputUnderflowed {
				return fmt.Errorf("write output stream: %w", werr)
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
