package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/spellz/internal/speech"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		opts speech.Options
		want string
	}{
		{"say", speech.Options{Rate: 0.9}, "-r 157 -- because"},
		{"say", speech.Options{}, "-r 175 -- because"},
		{"espeak-ng", speech.Options{Rate: 1, Locale: "en-US"}, "-s 160 -v en-US -- because"},
		{"espeak", speech.Options{Rate: 0.5}, "-s 80 -- because"},
	}
	for _, tt := range tests {
		got := strings.Join(commands[tt.name].args("because", tt.opts), " ")
		if got != tt.want {
			t.Errorf("%s args = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSynthesizer_RunsCommand(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	out := filepath.Join(t.TempDir(), "spoken")
	cmd := command{name: "/bin/sh", args: func(text string, _ speech.Options) []string {
		return []string{"-c", `printf '%s\n' "$1" >> "$2"`, "sh", text, out}
	}}
	s := newWith(cmd, nil)
	s.Speak("because", speech.DefaultOptions())
	s.Speak("Nice job!", speech.DefaultOptions())

	deadline := time.Now().Add(5 * time.Second)
	for {
		b, _ := os.ReadFile(out)
		if string(b) == "because\nNice job!\n" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("spoken = %q", b)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	s.Speak("ignored", speech.DefaultOptions())
}
