package whisper_test

import (
	"context"
	"os"
	"testing"

	"github.com/spf13/afero"

	"github.com/abhisek/spellz/internal/audio"
	"github.com/abhisek/spellz/internal/speech/whisper"
)

// testModelPath skips unless SPELLZ_WHISPER_MODEL points at a model.
func testModelPath(t *testing.T) string {
	t.Helper()
	p := os.Getenv("SPELLZ_WHISPER_MODEL")
	if p == "" {
		t.Skip("SPELLZ_WHISPER_MODEL not set; skipping whisper test")
	}
	return p
}

func TestNew_EmptyPath(t *testing.T) {
	if _, err := whisper.New(""); err == nil {
		t.Fatal("expected error for empty model path")
	}
}

func TestNew_InvalidPath(t *testing.T) {
	if _, err := whisper.New("/nonexistent/model.bin"); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestTranscribe_Silence(t *testing.T) {
	tr, err := whisper.New(testModelPath(t), whisper.WithLanguage("en"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Close()

	text, err := tr.Transcribe(context.Background(), make([]int16, audio.DefaultSampleRate), audio.DefaultSampleRate)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "" {
		t.Logf("silence transcribed as %q", text)
	}

	if _, err := tr.Transcribe(context.Background(), nil, 8000); err == nil {
		t.Error("expected error for unsupported sample rate")
	}
}

func TestTranscribe_Recording(t *testing.T) {
	clip := os.Getenv("SPELLZ_WHISPER_CLIP")
	if clip == "" {
		t.Skip("SPELLZ_WHISPER_CLIP not set")
	}
	tr, err := whisper.New(testModelPath(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Close()

	samples, rate, err := audio.ReadWAV(afero.NewOsFs(), clip)
	if err != nil {
		t.Fatalf("ReadWAV: %v", err)
	}
	text, err := tr.Transcribe(context.Background(), samples, rate)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text == "" {
		t.Error("empty transcript")
	}
}
