// Package service defines the contracts shared between the CLI and the backing packages.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/worth-it/internal/model"
)

// ProfileStore persists named financial profiles. Decision results are never stored.
type ProfileStore interface {
	SaveProfile(ctx context.Context, name string, profile model.FinancialProfile) error
	SaveProfileFrom(ctx context.Context, name, source string, profile model.FinancialProfile) error
	GetProfile(ctx context.Context, name string) (*model.FinancialProfile, error)
	ListProfiles(ctx context.Context) ([]NamedProfile, error)
	DeleteProfile(ctx context.Context, name string) error
	Close() error
}

// NamedProfile is a stored profile with its bookkeeping fields.
type NamedProfile struct {
	UpdatedAt time.Time
	Name      string
	Source    string
	Profile   model.FinancialProfile
}

// SpendClassifier buckets a purchase into a spend category.
type SpendClassifier interface {
	Classify(ctx context.Context, itemName string, cost float64) model.ClassificationResult
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// WithDefaults fills unset fields with 3 attempts, 100ms initial delay, 30s cap and 2x backoff.
func (o RetryOptions) WithDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 100 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2.0
	}
	return o
}
