package audio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"
)

func intBuffer(samples []int16, rate int) *goaudio.IntBuffer {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
}

// WriteWAV stores samples as a 16-bit mono PCM WAV file.
func WriteWAV(fs afero.Fs, name string, samples []int16, rate int) error {
	f, err := fs.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	if err := enc.Write(intBuffer(samples, rate)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finish %s: %w", name, err)
	}
	return f.Close()
}

// EncodeWAV returns samples as the bytes of a WAV file.
func EncodeWAV(samples []int16, rate int) ([]byte, error) {
	fs := afero.NewMemMapFs()
	if err := WriteWAV(fs, "utterance.wav", samples, rate); err != nil {
		return nil, err
	}
	return afero.ReadFile(fs, "utterance.wav")
}

// ReadWAV loads a mono 16-bit WAV file. Multi-channel files keep only
// the first channel.
func ReadWAV(fs afero.Fs, name string) ([]int16, int, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return DecodeWAV(f)
}

// DecodeWAV reads a WAV stream into 16-bit samples.
func DecodeWAV(r io.ReadSeeker) ([]int16, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode WAV: %w", err)
	}

	channels := max(buf.Format.NumChannels, 1)
	shift := 0
	if dec.BitDepth > 16 {
		shift = int(dec.BitDepth) - 16
	}
	out := make([]int16, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		v := buf.Data[i] >> shift
		if dec.BitDepth == 8 {
			v = (v - 128) << 8
		}
		out = append(out, int16(v))
	}
	return out, buf.Format.SampleRate, nil
}

// Float32 converts samples to [-1, 1) floats.
func Float32(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / 32768
	}
	return out
}
