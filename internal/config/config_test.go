package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, SpeechAuto, cfg.Speech)
	assert.Equal(t, 2*time.Second, cfg.AdvanceDelay)
	assert.Equal(t, 0.9, cfg.Rate)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.NoError(t, cfg.Validate())
}

func TestFromLookup(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"SPELLZ_NAME":          "Shelly",
		"SPELLZ_WORDS":         "week3.yaml",
		"SPELLZ_SPEECH":        "Whisper",
		"SPELLZ_WHISPER_MODEL": "/models/base.en.bin",
		"SPELLZ_DELAY":         "1500ms",
		"SPELLZ_SPEECH_RATE":   "0.8",
		"SPELLZ_LOCALE":        "en-GB",
		"SPELLZ_LOG_LEVEL":     "DEBUG",
		"SPELLZ_LOG_FILE":      "/tmp/spellz.log",
		"SPELLZ_VOICE":         "",
		"OPENAI_API_KEY":       "sk-fallback",
	}))
	require.NoError(t, err)

	assert.Equal(t, "Shelly", cfg.Name)
	assert.Equal(t, "week3.yaml", cfg.WordsPath)
	assert.Equal(t, SpeechWhisper, cfg.Speech)
	assert.Equal(t, "/models/base.en.bin", cfg.WhisperModel)
	assert.Equal(t, 1500*time.Millisecond, cfg.AdvanceDelay)
	assert.Equal(t, 0.8, cfg.Rate)
	assert.Equal(t, "en-GB", cfg.Locale)
	assert.Equal(t, LogDebug, cfg.LogLevel)
	assert.Equal(t, "alloy", cfg.Voice, "empty value keeps default")
	assert.Equal(t, "sk-fallback", cfg.OpenAIKey)
	assert.NoError(t, cfg.Validate())
}

func TestFromLookup_PrefixedKeyWins(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"SPELLZ_OPENAI_API_KEY": "sk-spellz",
		"OPENAI_API_KEY":        "sk-other",
	}))
	require.NoError(t, err)
	assert.Equal(t, "sk-spellz", cfg.OpenAIKey)
}

func TestFromLookup_BadValues(t *testing.T) {
	_, err := fromLookup(lookupFrom(map[string]string{
		"SPELLZ_DELAY":       "soon",
		"SPELLZ_SPEECH_RATE": "fast",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPELLZ_DELAY")
	assert.Contains(t, err.Error(), "SPELLZ_SPEECH_RATE")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.Speech = "carrier-pigeon" }, "unknown speech backend"},
		{"openai without key", func(c *Config) { c.Speech = SpeechOpenAI }, "OPENAI_API_KEY"},
		{"whisper without model", func(c *Config) { c.Speech = SpeechWhisper }, "--whisper-model"},
		{"negative delay", func(c *Config) { c.AdvanceDelay = -time.Second }, "advance delay"},
		{"zero rate", func(c *Config) { c.Rate = 0 }, "speech rate"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
		{"zero delay ok", func(c *Config) { c.AdvanceDelay = 0 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestVoiceOptions(t *testing.T) {
	cfg := Default()
	cfg.Rate = 1.2
	opts := cfg.VoiceOptions()
	assert.Equal(t, 1.2, opts.Rate)
	assert.Equal(t, "en-US", opts.Locale)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogWarn)
	logger.Info("hidden")
	logger.Warn("shown", "word", "because")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "because", rec["word"])
	assert.NotEmpty(t, rec["run_id"])
}

func TestConfigNewLogger_File(t *testing.T) {
	cfg := Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "spellz.log")

	logger, closer, err := cfg.NewLogger()
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestConfigNewLogger_Discard(t *testing.T) {
	logger, closer, err := Default().NewLogger()
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, closer.Close())
}
