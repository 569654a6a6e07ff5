package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a provider. The mapstructure tags match the
// llm.* keys of the advisor config file.
type Config struct {
	// Provider is one of the Provider* names. Empty disables the LLM and
	// recommendations come from the built-in catalog.
	Provider string `mapstructure:"provider"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds one recommendation request, retries included.
	Timeout time.Duration `mapstructure:"timeout"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig tunes WithRetry.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig has every model and retry default filled in and no
// provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate reports a missing API key for the selected provider or an
// unknown provider name.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "", ProviderMock:
		return nil
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("llm.%s.api_key (ADVISOR_LLM_%s_API_KEY) is required for the %s provider",
			c.Provider, strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

// discoverOrder lists the vendor key variables probed by DiscoverConfig,
// cheapest provider first.
var discoverOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig looks up the vendors' own API key variables and returns a
// default Config for the first one set. get is usually os.Getenv.
func DiscoverConfig(get func(string) string) (Config, bool) {
	for _, d := range discoverOrder {
		key := get(d.env)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = d.provider
		switch d.provider {
		case ProviderGemini:
			cfg.Gemini.APIKey = key
		case ProviderOpenAI:
			cfg.OpenAI.APIKey = key
		case ProviderAnthropic:
			cfg.Anthropic.APIKey = key
		case ProviderOpenRouter:
			cfg.OpenRouter.APIKey = key
		}
		return cfg, true
	}
	return Config{}, false
}
