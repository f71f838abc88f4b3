package speech_test

import (
	"testing"

	"github.com/abhisek/spellz/internal/speech"
)

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{" Because.", "Because"},
		{"because", "because"},
		{"  \"Friend!\"\n", "Friend"},
		{"don't?", "don't"},
		{"...", ""},
		{"ice-cream.", "ice-cream"},
	}
	for _, tt := range tests {
		if got := speech.CleanTranscript(tt.in); got != tt.want {
			t.Errorf("CleanTranscript(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
