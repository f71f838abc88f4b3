package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func tone(n int, amp float64, freq float64) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/DefaultSampleRate))
	}
	return out
}

func TestRing(t *testing.T) {
	r := NewRing(4)
	r.Add([]int16{1, 2})
	if got := r.Read(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("Read = %v", got)
	}

	r.Add([]int16{3, 4, 5, 6})
	got := r.Read()
	want := []int16{3, 4, 5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Read = %v, want %v", got, want)
		}
	}
	if r.Len() != 4 {
		t.Errorf("Len = %d", r.Len())
	}

	r.Reset()
	if r.Len() != 0 || len(r.Read()) != 0 {
		t.Errorf("Reset left %v", r.Read())
	}
}

func TestLevel(t *testing.T) {
	if Level(nil) != 0 {
		t.Error("Level(nil) != 0")
	}
	if got := Level(make([]int16, 100)); got != 0 {
		t.Errorf("silence level = %v", got)
	}
	if got := Level(tone(1024, 0.5, 440)); math.Abs(got-0.5/math.Sqrt2) > 0.01 {
		t.Errorf("tone level = %v, want ~0.354", got)
	}
}

func TestFluxDetector(t *testing.T) {
	d := NewFluxDetector(DefaultFrameSize)
	quiet := d.Flux(make([]int16, DefaultFrameSize))
	loud := d.Flux(tone(DefaultFrameSize, 0.5, 440))
	steady := d.Flux(tone(DefaultFrameSize, 0.5, 440))

	if quiet != 0 {
		t.Errorf("flux of silence = %v", quiet)
	}
	if loud <= 0 {
		t.Errorf("onset flux = %v, want > 0", loud)
	}
	if steady >= loud {
		t.Errorf("steady flux %v should be below onset flux %v", steady, loud)
	}
}

func frames(samples []int16, size int) [][]int16 {
	var out [][]int16
	for i := 0; i < len(samples); i += size {
		out = append(out, samples[i:min(i+size, len(samples))])
	}
	return out
}

func testSegmentConfig() SegmentConfig {
	cfg := DefaultSegmentConfig()
	cfg.QuietTime = 200 * time.Millisecond
	cfg.NoSpeechTimeout = time.Second
	cfg.MaxDuration = 2 * time.Second
	return cfg
}

func TestSegmenter_Utterance(t *testing.T) {
	cfg := testSegmentConfig()
	var stream []int16
	stream = append(stream, make([]int16, cfg.FrameSize*4)...)
	stream = append(stream, tone(cfg.FrameSize*6, 0.4, 300)...)
	stream = append(stream, make([]int16, cfg.FrameSize*10)...)

	s := NewSegmenter(cfg)
	done := false
	for _, f := range frames(stream, cfg.FrameSize) {
		if s.Push(f) {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("segmenter never finished")
	}
	if !s.Heard() {
		t.Fatal("speech not heard")
	}
	got := len(s.Samples())
	if got < cfg.FrameSize*6 || got > cfg.FrameSize*6+cfg.samples(cfg.PreRoll)+cfg.FrameSize {
		t.Errorf("utterance has %d samples", got)
	}
}

func TestSegmenter_NoSpeech(t *testing.T) {
	cfg := testSegmentConfig()
	s := NewSegmenter(cfg)
	pushed := 0
	for !s.Push(make([]int16, cfg.FrameSize)) {
		pushed++
		if pushed > 100 {
			t.Fatal("no-speech timeout never fired")
		}
	}
	if s.Heard() {
		t.Error("heard speech in silence")
	}
	if len(s.Samples()) != 0 {
		t.Errorf("Samples = %d, want none", len(s.Samples()))
	}
}

func TestSegmenter_MaxDuration(t *testing.T) {
	cfg := testSegmentConfig()
	s := NewSegmenter(cfg)
	s.Push(make([]int16, cfg.FrameSize))

	pushed := 0
	for _, f := range frames(tone(cfg.samples(5*time.Second), 0.4, 300), cfg.FrameSize) {
		pushed++
		if s.Push(f) {
			break
		}
	}
	if limit := cfg.samples(cfg.MaxDuration)/cfg.FrameSize + 2; pushed > limit {
		t.Errorf("pushed %d frames, want cut off near %d", pushed, limit)
	}
}

func TestWAVRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	samples := tone(4000, 0.3, 220)
	if err := WriteWAV(fs, "a.wav", samples, DefaultSampleRate); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	got, rate, err := ReadWAV(fs, "a.wav")
	if err != nil {
		t.Fatalf("ReadWAV: %v", err)
	}
	if rate != DefaultSampleRate {
		t.Errorf("rate = %d", rate)
	}
	if len(got) != len(samples) {
		t.Fatalf("len = %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}

	raw, err := EncodeWAV(samples, DefaultSampleRate)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	if string(raw[:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		t.Errorf("header = %q", raw[:12])
	}
}

func TestReadWAV_Invalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "bad.wav", []byte("not a wav file at all"), 0o644)
	if _, _, err := ReadWAV(fs, "bad.wav"); err == nil {
		t.Error("expected error")
	}
	if _, _, err := ReadWAV(fs, "missing.wav"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFloat32(t *testing.T) {
	got := Float32([]int16{0, 16384, -32768})
	if got[0] != 0 || got[1] != 0.5 || got[2] != -1 {
		t.Errorf("Float32 = %v", got)
	}
}

func TestSampleSource(t *testing.T) {
	s := NewSampleSource([]int16{1, 2, 3, 4, 5}, 2)
	if _, err := s.Read(); err == nil {
		t.Error("read before start should fail")
	}
	_ = s.Start()

	var got [][]int16
	for {
		f, err := s.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, f)
	}
	if len(got) != 3 || got[2][0] != 5 || got[2][1] != 0 {
		t.Errorf("frames = %v", got)
	}

	_ = s.Close()
	if _, err := s.Read(); err != ErrClosed {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}
