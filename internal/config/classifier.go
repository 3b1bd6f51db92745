package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/worth-it/internal/common"
	"github.com/Veraticus/worth-it/internal/llm"
)

// Classifier defaults applied when neither the config file nor the environment sets a value.
const (
	DefaultProvider   = llm.ProviderOpenAI
	DefaultMaxRetries = 2
	DefaultRetryDelay = 500 * time.Millisecond
	DefaultTimeout    = 10 * time.Second
	DefaultRateLimit  = 60
)

// LoadClassifierConfig builds the classifier configuration.
// It follows this precedence:
// 1. Viper configuration (from config file or WORTHIT_ env vars)
// 2. Direct environment variables (OPENAI_API_KEY, ANTHROPIC_API_KEY)
// 3. Default values
//
// A missing API key is not an error here; the classifier falls back without one.
func LoadClassifierConfig() (llm.Config, error) {
	cfg := llm.Config{
		Provider:      strings.ToLower(viper.GetString("llm.provider")),
		Model:         viper.GetString("llm.model"),
		BaseURL:       viper.GetString("llm.base_url"),
		MaxRetries:    viper.GetInt("llm.max_retries"),
		RetryDelay:    viper.GetDuration("llm.retry_delay"),
		Timeout:       viper.GetDuration("llm.timeout"),
		CacheTTL:      viper.GetDuration("llm.cache_ttl"),
		CacheCapacity: viper.GetInt("llm.cache_capacity"),
		RateLimit:     viper.GetInt("llm.rate_limit"),
		Temperature:   viper.GetFloat64("llm.temperature"),
		MaxTokens:     viper.GetInt("llm.max_tokens"),
	}

	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = llm.DefaultCacheTTL
	}
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = llm.DefaultCacheCapacity
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}

	switch cfg.Provider {
	case llm.ProviderOpenAI:
		cfg.APIKey = firstNonEmpty(viper.GetString("llm.openai_api_key"), os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		cfg.APIKey = firstNonEmpty(viper.GetString("llm.anthropic_api_key"), os.Getenv("ANTHROPIC_API_KEY"))
	default:
		return llm.Config{}, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}

	return cfg, nil
}

// DatabasePath returns the profile database location, defaulting to
// $HOME/.config/worthit/worthit.db.
func DatabasePath() (string, error) {
	if p := viper.GetString("database.path"); p != "" {
		return ExpandPath(p), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "worthit", "worthit.db"), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
