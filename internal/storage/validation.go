// Package storage persists named financial profiles in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/worth-it/internal/common"
	"github.com/Veraticus/worth-it/internal/model"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
)

// maxProfileNameLength bounds profile names.
const maxProfileNameLength = 64

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateProfileName(name string) error {
	if err := validateString(name, "name"); err != nil {
		return err
	}
	if len(name) > maxProfileNameLength {
		return fmt.Errorf("%w: name longer than %d characters", common.ErrInvalidProfile, maxProfileNameLength)
	}
	return nil
}

// ValidateProfile rejects negative or non-finite amounts and unknown enums.
func ValidateProfile(p model.FinancialProfile) error {
	amounts := map[string]float64{
		"monthlyIncome":   p.MonthlyIncome,
		"monthlyExpenses": p.MonthlyExpenses,
		"debtPayments":    p.DebtPayments,
		"currentSavings":  p.CurrentSavings,
	}
	for _, field := range []string{"monthlyIncome", "monthlyExpenses", "debtPayments", "currentSavings"} {
		v := amounts[field]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", common.ErrInvalidProfile, field, v)
		}
	}

	switch p.RiskTolerance {
	case "", model.RiskLow, model.RiskModerate, model.RiskHigh:
	default:
		return fmt.Errorf("%w: unknown risk tolerance %q", common.ErrInvalidProfile, p.RiskTolerance)
	}

	switch p.FinancialGoal {
	case "", model.GoalSave, model.GoalDebt, model.GoalInvest, model.GoalBalance:
	default:
		return fmt.Errorf("%w: unknown financial goal %q", common.ErrInvalidProfile, p.FinancialGoal)
	}

	return nil
}
