package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Veraticus/worth-it/internal/common"
	"github.com/Veraticus/worth-it/internal/metrics"
	"github.com/Veraticus/worth-it/internal/model"
	"github.com/Veraticus/worth-it/internal/service"
)

// HighValueThreshold is the cost at or above which a purchase is HIGH_VALUE
// without asking the categorizer.
const HighValueThreshold = 300.0

// FallbackCategory is returned when input is invalid or the categorizer fails.
const FallbackCategory = model.SpendDiscretionarySmall

// Fallback reasons, used as metric labels and log fields.
const (
	reasonInvalidInput = "invalid_input"
	reasonCallFailed   = "call_failed"
	reasonUnknownLabel = "unknown_label"
)

// Config holds configuration for the classifier and its categorizer client.
type Config struct {
	Provider      string
	APIKey        string
	Model         string
	BaseURL       string
	MaxRetries    int
	RetryDelay    time.Duration
	Timeout       time.Duration
	CacheTTL      time.Duration
	CacheCapacity int
	RateLimit     int
	Temperature   float64
	MaxTokens     int
}

// Classifier buckets purchases into spend categories.
type Classifier struct {
	client      Client
	cache       *CacheStore
	logger      *slog.Logger
	rateLimiter *rateLimiter
	provider    string
	retryOpts   service.RetryOptions
	timeout     time.Duration
}

// NewClassifier creates a classifier backed by the configured provider.
// A nil cache gets a fresh CacheStore sized from cfg.
func NewClassifier(cfg Config, cache *CacheStore, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewClassifierWithClient(client, cache, cfg, logger), nil
}

// NewClassifierWithClient wires a classifier around an existing client.
func NewClassifierWithClient(client Client, cache *CacheStore, cfg Config, logger *slog.Logger) *Classifier {
	if cache == nil {
		cache = NewCacheStore(WithCapacity(cfg.CacheCapacity), WithTTL(cfg.CacheTTL))
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = "custom"
	}

	return &Classifier{
		client:   client,
		cache:    cache,
		logger:   logger,
		provider: provider,
		timeout:  timeout,
		retryOpts: service.RetryOptions{
			MaxAttempts:  cfg.MaxRetries,
			InitialDelay: cfg.RetryDelay,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		}.WithDefaults(),
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// Cache exposes the classifier's cache for stats and resets.
func (c *Classifier) Cache() *CacheStore {
	return c.cache
}

// Close stops background goroutines.
func (c *Classifier) Close() error {
	c.rateLimiter.Close()
	return nil
}

// Classify never fails. Invalid input and categorizer failures return
// DISCRETIONARY_SMALL with Cached=false and are not stored.
// Concurrent calls for the same uncached key each reach the categorizer.
func (c *Classifier) Classify(ctx context.Context, itemName string, cost float64) model.ClassificationResult {
	if err := validateClassification(itemName, cost); err != nil {
		return c.fallback(reasonInvalidInput, itemName, cost, err)
	}

	key := CacheKey(itemName, cost)
	if category, ok := c.cache.Get(key); ok {
		c.logger.Debug("classification cache hit", "key", key, "category", category)
		return model.ClassificationResult{Category: category, Cached: true}
	}

	if cost >= HighValueThreshold {
		c.cache.Set(key, model.SpendHighValue)
		c.logger.Debug("classified by price rule", "item", itemName, "cost", cost)
		return model.ClassificationResult{Category: model.SpendHighValue}
	}

	category, err := c.categorize(ctx, itemName, cost)
	if err != nil {
		reason := reasonCallFailed
		if errors.Is(err, common.ErrUnknownSpendCategory) {
			reason = reasonUnknownLabel
		}
		return c.fallback(reason, itemName, cost, err)
	}

	c.cache.Set(key, category)
	c.logger.Info("purchase classified",
		"item", itemName,
		"cost", cost,
		"category", category,
		"provider", c.provider)

	return model.ClassificationResult{Category: category}
}

func (c *Classifier) categorize(ctx context.Context, itemName string, cost float64) (model.SpendCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := CategorizeRequest{ItemName: strings.TrimSpace(itemName), Cost: cost}

	var category model.SpendCategory
	err := common.WithRetry(ctx, func() error {
		if err := c.rateLimiter.wait(ctx); err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		start := time.Now()
		resp, err := c.client.Categorize(ctx, req)
		metrics.CategorizerDuration.WithLabelValues(c.provider).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.CategorizerCalls.WithLabelValues(c.provider, metrics.OutcomeError).Inc()
			c.logger.Warn("categorization attempt failed",
				"item", req.ItemName,
				"error", err)
			if ctx.Err() != nil {
				return &common.RetryableError{Err: err, Retryable: false}
			}
			return err
		}
		metrics.CategorizerCalls.WithLabelValues(c.provider, metrics.OutcomeSuccess).Inc()

		parsed, ok := model.ParseClassifierCategory(resp.Category)
		if !ok {
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: %q", common.ErrUnknownSpendCategory, resp.Category),
				Retryable: false,
			}
		}
		category = parsed
		return nil
	}, c.retryOpts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrClassificationFailed, err)
	}

	return category, nil
}

func (c *Classifier) fallback(reason, itemName string, cost float64, err error) model.ClassificationResult {
	metrics.ClassificationFallbacks.WithLabelValues(reason).Inc()
	c.logger.Warn("classification fell back to default category",
		"item", itemName,
		"cost", cost,
		"reason", reason,
		"category", FallbackCategory,
		"error", err)
	return model.ClassificationResult{Category: FallbackCategory}
}

func validateClassification(itemName string, cost float64) error {
	if strings.TrimSpace(itemName) == "" {
		return fmt.Errorf("%w: item name is empty", common.ErrInvalidClassificationInput)
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return fmt.Errorf("%w: cost %v", common.ErrInvalidClassificationInput, cost)
	}
	return nil
}
