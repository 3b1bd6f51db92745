package flip

import (
	"fmt"
	"math"

	"github.com/Veraticus/worth-it/internal/model"
)

// lever describes how one input can be moved and how far.
type lever struct {
	// bound returns the largest delta worth trying. Zero or less means the lever does not apply.
	bound func(in model.PurchaseInput) float64
	// limit is the largest delta rounding may produce.
	limit func(in model.PurchaseInput) float64
	// apply moves the lever by delta on a copy the caller owns.
	apply func(in *model.PurchaseInput, delta float64)
	name  model.Lever
	step  float64
}

var levers = []lever{
	{
		name: model.LeverSavingsBoost,
		step: 50,
		bound: func(in model.PurchaseInput) float64 {
			if in.Profile == nil {
				return 0
			}
			return math.Max(in.Cost, 6*in.Profile.MonthlyExpenses)
		},
		apply: func(in *model.PurchaseInput, delta float64) {
			in.Profile.CurrentSavings += delta
		},
	},
	{
		name: model.LeverDebtReduction,
		step: 10,
		bound: func(in model.PurchaseInput) float64 {
			if in.Profile == nil {
				return 0
			}
			return in.Profile.DebtPayments
		},
		apply: func(in *model.PurchaseInput, delta float64) {
			in.Profile.DebtPayments -= delta
		},
	},
	{
		name: model.LeverIncomeIncrease,
		step: 10,
		bound: func(in model.PurchaseInput) float64 {
			if in.Profile == nil {
				return 0
			}
			p := in.Profile
			return math.Min(math.Max(in.Cost, 2*p.DebtPayments), 0.8*p.MonthlyIncome)
		},
		limit: func(in model.PurchaseInput) float64 {
			return 0.8 * in.Profile.MonthlyIncome
		},
		apply: func(in *model.PurchaseInput, delta float64) {
			in.Profile.MonthlyIncome += delta
		},
	},
	{
		name: model.LeverExpenseCut,
		step: 10,
		bound: func(in model.PurchaseInput) float64 {
			if in.Profile == nil {
				return 0
			}
			p := in.Profile
			return math.Min(p.MonthlyExpenses, 0.8*p.MonthlyIncome)
		},
		limit: func(in model.PurchaseInput) float64 {
			return in.Profile.MonthlyExpenses
		},
		apply: func(in *model.PurchaseInput, delta float64) {
			in.Profile.MonthlyExpenses -= delta
		},
	},
	{
		name: model.LeverPriceCut,
		step: 50,
		bound: func(in model.PurchaseInput) float64 {
			return in.Cost
		},
		apply: func(in *model.PurchaseInput, delta float64) {
			in.Cost -= delta
		},
	},
}

// cap returns the rounding limit, which defaults to the search bound.
func (l lever) cap(in model.PurchaseInput) float64 {
	if l.limit == nil {
		return l.bound(in)
	}
	return l.limit(in)
}

func (l lever) message(in model.PurchaseInput, delta float64) string {
	switch l.name {
	case model.LeverSavingsBoost:
		return fmt.Sprintf("Add $%.0f to your savings before buying.", delta)
	case model.LeverDebtReduction:
		return fmt.Sprintf("Lower your debt payments by $%.0f/month.", delta)
	case model.LeverIncomeIncrease:
		return fmt.Sprintf("Raise your monthly income by $%.0f/month.", delta)
	case model.LeverExpenseCut:
		return fmt.Sprintf("Cut your monthly expenses by $%.0f/month.", delta)
	case model.LeverPriceCut:
		return fmt.Sprintf("Find it for $%.0f less, at $%.0f or below.", delta, in.Cost-delta)
	default:
		return ""
	}
}
