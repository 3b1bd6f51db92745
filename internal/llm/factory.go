package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/worth-it/internal/common"
)

// Supported providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// NewClient creates a categorizer client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	var (
		client Client
		err    error
	)

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		client, err = newOpenAIClient(cfg)
	case ProviderAnthropic:
		client, err = newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %q", common.ErrInvalidConfig, cfg.Provider)
	}

	if err != nil {
		return nil, err
	}
	return client, nil
}

// NewOfflineClient returns a client that fails every call without retrying.
// It stands in when no API key is configured so the price rule and fallback still apply.
func NewOfflineClient(provider string) Client {
	return offlineClient{provider: provider}
}

type offlineClient struct {
	provider string
}

func (o offlineClient) Categorize(context.Context, CategorizeRequest) (CategorizeResponse, error) {
	return CategorizeResponse{}, &common.RetryableError{
		Err:       fmt.Errorf("%w: no API key for %s", common.ErrMissingConfig, o.provider),
		Retryable: false,
	}
}
