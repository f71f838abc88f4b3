// Package audio captures utterances from the microphone and plays PCM
// back. Samples are mono 16-bit signed integers throughout.
package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// FluxDetector measures spectral flux: how much the magnitude spectrum
// grew since the previous frame. Onsets of speech show up as spikes.
type FluxDetector struct {
	prev   []float64
	window []float64
}

// NewFluxDetector creates a detector for frames of frameSize samples.
func NewFluxDetector(frameSize int) *FluxDetector {
	return &FluxDetector{
		prev:   make([]float64, frameSize/2+1),
		window: window.Hann(frameSize),
	}
}

// Flux returns the spectral flux of frame against the previous frame.
// Frames shorter than the detector size are zero padded.
func (d *FluxDetector) Flux(frame []int16) float64 {
	x := make([]float64, len(d.window))
	for i := range x {
		if i < len(frame) {
			x[i] = float64(frame[i]) / math.MaxInt16 * d.window[i]
		}
	}

	spectrum := fft.FFTReal(x)
	var flux float64
	for i := range d.prev {
		mag := cmplx.Abs(spectrum[i])
		if diff := mag - d.prev[i]; diff > 0 {
			flux += diff
		}
		d.prev[i] = mag
	}
	return flux
}

// Level returns the RMS of frame scaled to [0, 1].
func Level(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		v := float64(s) / math.MaxInt16
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}
