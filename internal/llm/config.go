package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// envPrefix namespaces every variable read by ConfigFromEnv.
const envPrefix = "SPELLZ_"

// Config selects and configures a provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig is exponential backoff with jitter.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses the small, cheap model of each provider. Word lists
// are short and do not need anything bigger.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// ConfigFromEnv overlays SPELLZ_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	return configFromLookup(os.LookupEnv)
}

func configFromLookup(lookup func(string) (string, bool)) Config {
	cfg := DefaultConfig()

	set := func(dst *string, name string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "LLM_PROVIDER")
	set(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "ANTHROPIC_MODEL")
	set(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	set(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "GEMINI_MODEL")
	set(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "OPENROUTER_MODEL")
	set(&cfg.OpenRouter.BaseURL, "OPENROUTER_BASE_URL")

	if v, ok := lookup(envPrefix + "LLM_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// DiscoverConfig falls back to the vendors' own key variables when no
// SPELLZ_* provider is configured. The first key found wins, in the order
// Anthropic, OpenAI, Gemini, OpenRouter.
func DiscoverConfig() (Config, bool) {
	return discoverFromLookup(os.LookupEnv)
}

func discoverFromLookup(lookup func(string) (string, bool)) (Config, bool) {
	cfg := DefaultConfig()
	candidates := []struct {
		env      string
		provider string
		key      *string
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if v, ok := lookup(c.env); ok && v != "" {
			cfg.Provider = c.provider
			*c.key = v
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate reports a missing API key for the selected provider.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s%s is required for the %s provider", envPrefix, env, c.Provider)
	}
	return nil
}

// Configured reports whether ConfigFromEnv found a usable provider.
func (c Config) Configured() bool {
	return c.Provider != ProviderMock && c.Validate() == nil
}
