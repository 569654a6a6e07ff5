// Package config loads advisor settings from flags, environment
// (ADVISOR_*) and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/careerpath/advisor/internal/handoff"
	"github.com/careerpath/advisor/internal/llm"
	"github.com/careerpath/advisor/internal/login"
	"github.com/careerpath/advisor/internal/profile"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ADVISOR"

// Keys understood by Load. Nested keys map to env vars by replacing "."
// with "_", e.g. log.level -> ADVISOR_LOG_LEVEL.
const (
	KeyDB              = "db"
	KeyEphemeral       = "ephemeral"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyLogFile         = "log.file"
	KeyLoginMode       = "login.mode"
	KeyRequirePassword = "login.require_password"
	KeyHandoffBase     = "handoff.base_url"
	KeyCacheSize       = "cache.size"
	KeyLLMProvider     = "llm.provider"
	KeyLLMTimeout      = "llm.timeout"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath    string // empty means the default data dir location
	Ephemeral bool   // keep the profile in memory only

	LogLevel  string
	LogFormat string
	LogFile   string // empty means <data dir>/advisor.log

	Login       login.Validator
	HandoffBase string
	CacheSize   int

	LLM llm.Config

	// File is the config file that was read, if any.
	File string
}

// New returns a viper instance with defaults and env binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := llm.DefaultConfig()
	defaults := map[string]any{
		KeyDB:              "",
		KeyEphemeral:       false,
		KeyLogLevel:        "info",
		KeyLogFormat:       "text",
		KeyLogFile:         "",
		KeyLoginMode:       string(login.ModeSignUp),
		KeyRequirePassword: false,
		KeyHandoffBase:     handoff.DefaultBase,
		KeyCacheSize:       profile.DefaultCacheSize,
		KeyLLMProvider:     "",
		KeyLLMTimeout:      def.Timeout,

		"llm.anthropic.api_key":   "",
		"llm.anthropic.model":     def.Anthropic.Model,
		"llm.openai.api_key":      "",
		"llm.openai.model":        def.OpenAI.Model,
		"llm.openai.base_url":     "",
		"llm.gemini.api_key":      "",
		"llm.gemini.model":        def.Gemini.Model,
		"llm.openrouter.api_key":  "",
		"llm.openrouter.model":    def.OpenRouter.Model,
		"llm.openrouter.base_url": "",

		"llm.retry.max_attempts": def.Retry.MaxAttempts,
		"llm.retry.initial_wait": def.Retry.InitialWait,
		"llm.retry.max_wait":     def.Retry.MaxWait,
		"llm.retry.multiplier":   def.Retry.Multiplier,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// Load reads the config file (explicit path, or advisor.{yaml,json,toml}
// in the user config dir or working dir) and resolves all keys.
// A missing implicit config file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("advisor")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "advisor"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	mode, err := login.ParseMode(v.GetString(KeyLoginMode))
	if err != nil {
		return Config{}, err
	}

	llmCfg, err := llmConfig(v)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    v.GetString(KeyDB),
		Ephemeral: v.GetBool(KeyEphemeral),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		LogFile:   v.GetString(KeyLogFile),
		Login: login.Validator{
			Mode:            mode,
			RequirePassword: v.GetBool(KeyRequirePassword),
		},
		HandoffBase: v.GetString(KeyHandoffBase),
		CacheSize:   v.GetInt(KeyCacheSize),
		LLM:         llmCfg,
		File:        v.ConfigFileUsed(),
	}

	if err := cfg.LLM.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// llmConfig decodes the llm.* subtree. Unmarshal walks every known key, so
// env overrides of defaulted keys are picked up.
func llmConfig(v *viper.Viper) (llm.Config, error) {
	var raw struct {
		LLM llm.Config `mapstructure:"llm"`
	}
	raw.LLM = llm.DefaultConfig()
	if err := v.Unmarshal(&raw); err != nil {
		return llm.Config{}, fmt.Errorf("decode llm config: %w", err)
	}
	raw.LLM.Provider = strings.ToLower(strings.TrimSpace(raw.LLM.Provider))
	if raw.LLM.Timeout <= 0 {
		raw.LLM.Timeout = llm.DefaultConfig().Timeout
	}
	return raw.LLM, nil
}
