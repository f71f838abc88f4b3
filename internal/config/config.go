// Package config resolves spellz settings from defaults, a .env file,
// SPELLZ_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/spellz/internal/practice"
	"github.com/abhisek/spellz/internal/speech"
)

const envPrefix = "SPELLZ_"

// SpeechBackend selects how words are spoken and answers heard.
type SpeechBackend string

const (
	SpeechAuto    SpeechBackend = "auto"
	SpeechOpenAI  SpeechBackend = "openai"
	SpeechWhisper SpeechBackend = "whisper"
	SpeechSystem  SpeechBackend = "system"
	SpeechNone    SpeechBackend = "none"
)

func (b SpeechBackend) valid() bool {
	switch b {
	case SpeechAuto, SpeechOpenAI, SpeechWhisper, SpeechSystem, SpeechNone:
		return true
	}
	return false
}

// LogLevel is one of debug, info, warn, error.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

func (l LogLevel) valid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config holds runtime settings.
type Config struct {
	// Name of the learner, used in greetings and affirmations.
	Name string

	// WordsPath is a YAML or JSON word list. Empty means the built-in list.
	WordsPath string

	Speech       SpeechBackend
	WhisperModel string

	// OpenAIKey and OpenAIBaseURL configure the OpenAI speech backend.
	OpenAIKey     string
	OpenAIBaseURL string
	Voice         string

	AdvanceDelay time.Duration
	Rate         float64
	Locale       string

	// ArchiveDir, when set, keeps a WAV file of every captured answer.
	ArchiveDir string

	LogFile  string
	LogLevel LogLevel
}

// Default returns the built-in settings.
func Default() Config {
	voice := speech.DefaultOptions()
	return Config{
		Speech:       SpeechAuto,
		Voice:        "alloy",
		AdvanceDelay: practice.DefaultAdvanceDelay,
		Rate:         voice.Rate,
		Locale:       voice.Locale,
		LogLevel:     LogInfo,
	}
}

// Load reads .env from the working directory when present, then the
// environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	get := func(key string) (string, bool) {
		v, ok := lookup(envPrefix + key)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}

	if v, ok := get("NAME"); ok {
		cfg.Name = v
	}
	if v, ok := get("WORDS"); ok {
		cfg.WordsPath = v
	}
	if v, ok := get("SPEECH"); ok {
		cfg.Speech = SpeechBackend(strings.ToLower(v))
	}
	if v, ok := get("WHISPER_MODEL"); ok {
		cfg.WhisperModel = v
	}
	if v, ok := get("OPENAI_API_KEY"); ok {
		cfg.OpenAIKey = v
	} else if v, ok := lookup("OPENAI_API_KEY"); ok {
		cfg.OpenAIKey = v
	}
	if v, ok := get("OPENAI_BASE_URL"); ok {
		cfg.OpenAIBaseURL = v
	}
	if v, ok := get("VOICE"); ok {
		cfg.Voice = v
	}
	if v, ok := get("DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sDELAY: %w", envPrefix, err))
		} else {
			cfg.AdvanceDelay = d
		}
	}
	if v, ok := get("SPEECH_RATE"); ok {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSPEECH_RATE: %w", envPrefix, err))
		} else {
			cfg.Rate = r
		}
	}
	if v, ok := get("LOCALE"); ok {
		cfg.Locale = v
	}
	if v, ok := get("ARCHIVE_DIR"); ok {
		cfg.ArchiveDir = v
	}
	if v, ok := get("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.LogLevel = LogLevel(strings.ToLower(v))
	}

	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if !c.Speech.valid() {
		errs = append(errs, fmt.Errorf("unknown speech backend %q (want auto, openai, whisper, system or none)", c.Speech))
	}
	if c.Speech == SpeechOpenAI && c.OpenAIKey == "" {
		errs = append(errs, fmt.Errorf("speech backend openai needs %sOPENAI_API_KEY or OPENAI_API_KEY", envPrefix))
	}
	if c.Speech == SpeechWhisper && c.WhisperModel == "" {
		errs = append(errs, fmt.Errorf("speech backend whisper needs --whisper-model or %sWHISPER_MODEL", envPrefix))
	}
	if c.AdvanceDelay < 0 {
		errs = append(errs, fmt.Errorf("advance delay must not be negative, got %v", c.AdvanceDelay))
	}
	if c.Rate <= 0 || c.Rate > 4 {
		errs = append(errs, fmt.Errorf("speech rate must be in (0, 4], got %v", c.Rate))
	}
	if !c.LogLevel.valid() {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// VoiceOptions returns the speech options for the configured rate and
// locale.
func (c Config) VoiceOptions() speech.Options {
	return speech.Options{Rate: c.Rate, Locale: c.Locale}
}
