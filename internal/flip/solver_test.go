package flip

import (
	"math"
	"testing"

	"github.com/Veraticus/worth-it/internal/decision"
	"github.com/Veraticus/worth-it/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scorerFunc func(model.PurchaseInput) float64

func (f scorerFunc) FinalScore(in model.PurchaseInput) float64 { return f(in) }

func gadget(cost, income, expenses, debt, savings float64) model.PurchaseInput {
	return model.PurchaseInput{
		ItemName: "Gadget",
		Cost:     cost,
		Profile: &model.FinancialProfile{
			MonthlyIncome:   income,
			MonthlyExpenses: expenses,
			DebtPayments:    debt,
			CurrentSavings:  savings,
		},
	}
}

func TestSolveStretchedBudget(t *testing.T) {
	engine := decision.NewEngine()
	solver := NewSolver(engine)

	in := gadget(1000, 3000, 2500, 0, 0)
	analysis := engine.Analyze(in)
	require.Less(t, analysis.FinalScore, model.BuyThreshold)

	result := solver.Solve(in, analysis)
	require.True(t, result.Found())

	require.NotNil(t, result.PathB)
	assert.Equal(t, model.LeverPriceCut, result.PathB.Lever)
	assert.Equal(t, model.UnitUSD, result.PathB.Unit)
	assert.Equal(t, 850.0, result.PathB.Delta)
	assert.Equal(t, "Find it for $850 less, at $150 or below.", result.PathB.Message)

	require.NotNil(t, result.PathA)
	assert.Equal(t, model.LeverPriceCut, result.PathA.Lever)

	full := Apply(result.PathB.Lever, in, result.PathB.Delta)
	half := Apply(result.PathB.Lever, in, result.PathB.Delta/2)
	assert.GreaterOrEqual(t, engine.FinalScore(full), model.BuyThreshold)
	assert.Less(t, engine.FinalScore(half), model.BuyThreshold)

	// Savings alone cannot carry this purchase and there is no debt to cut.
	assert.Nil(t, solver.Lever(model.LeverSavingsBoost, in))
	assert.Nil(t, solver.Lever(model.LeverDebtReduction, in))

	// The caller's input is untouched.
	assert.Equal(t, 1000.0, in.Cost)
	assert.Equal(t, 0.0, in.Profile.CurrentSavings)
}

func TestSolveSavingsBoostTimeline(t *testing.T) {
	engine := decision.NewEngine()
	solver := NewSolver(engine)

	in := gadget(300, 5000, 2000, 0, 0)
	result := solver.Solve(in, engine.Analyze(in))

	levers := map[model.Lever]model.FlipSuggestion{}
	for _, c := range result.Candidates {
		levers[c.Lever] = c
	}

	savings, ok := levers[model.LeverSavingsBoost]
	require.True(t, ok)
	assert.Equal(t, 6000.0, savings.Delta)
	require.NotNil(t, savings.TimelineMonths)
	assert.Equal(t, 2, *savings.TimelineMonths)

	price, ok := levers[model.LeverPriceCut]
	require.True(t, ok)
	assert.Equal(t, 50.0, price.Delta)

	assert.NotContains(t, levers, model.LeverIncomeIncrease)
	assert.NotContains(t, levers, model.LeverExpenseCut)
	assert.NotContains(t, levers, model.LeverDebtReduction)

	require.NotNil(t, result.PathA)
	assert.Equal(t, model.LeverPriceCut, result.PathA.Lever)
}

func TestSolveFallsBackToRecurringLever(t *testing.T) {
	// Only lowering debt payments to 200 or less flips this stub.
	stub := scorerFunc(func(in model.PurchaseInput) float64 {
		if in.Profile != nil && in.Profile.DebtPayments <= 200 {
			return 70
		}
		return 40
	})
	solver := NewSolver(stub)

	in := gadget(100, 4000, 1000, 500, 0)
	result := solver.Solve(in, model.DecisionAnalysis{FinalScore: 40})

	require.NotNil(t, result.PathA)
	assert.Equal(t, model.LeverDebtReduction, result.PathA.Lever)
	assert.Equal(t, model.UnitUSDPerMonth, result.PathA.Unit)
	assert.Equal(t, 300.0, result.PathA.Delta)
	assert.Equal(t, "Lower your debt payments by $300/month.", result.PathA.Message)
	assert.Nil(t, result.PathB)
	assert.Len(t, result.Candidates, 1)
}

func TestSolveRoundingStepsUp(t *testing.T) {
	// Threshold sits at a 123 cost cut: nearest step is 100, which fails, so 150 is suggested.
	stub := scorerFunc(func(in model.PurchaseInput) float64 {
		if in.Cost <= 877 {
			return 61
		}
		return 10
	})

	got := NewSolver(stub).Lever(model.LeverPriceCut, model.PurchaseInput{Cost: 1000})
	require.NotNil(t, got)
	assert.Equal(t, 150.0, got.Delta)
}

func TestSolveRoundingRespectsCap(t *testing.T) {
	// Only the full expense cut passes; stepping up must not exceed current expenses.
	stub := scorerFunc(func(in model.PurchaseInput) float64 {
		if in.Profile.MonthlyExpenses <= 0 {
			return 61
		}
		return 10
	})

	in := gadget(10, 10000, 1234, 0, 0)
	got := NewSolver(stub).Lever(model.LeverExpenseCut, in)
	require.NotNil(t, got)
	assert.Equal(t, 1234.0, got.Delta)
}

func TestSolveRoundingGivesUpWhenSteppedValueFails(t *testing.T) {
	// Cuts of 792 to 797 pass, as does the full 800.8 search bound. The search lands
	// near 792, which rounds to a failing 790, and the next step of 800 fails too.
	stub := scorerFunc(func(in model.PurchaseInput) float64 {
		remaining := in.Profile.MonthlyExpenses
		if (remaining >= 437 && remaining <= 442) || math.Abs(remaining-433.2) < 1e-6 {
			return 61
		}
		return 10
	})

	in := gadget(10, 1001, 1234, 0, 0)
	assert.Nil(t, NewSolver(stub).Lever(model.LeverExpenseCut, in))
}

func TestSolveSkipsBuyAndMissingProfile(t *testing.T) {
	engine := decision.NewEngine()
	solver := NewSolver(engine)

	result := solver.Solve(gadget(1000, 3000, 2500, 0, 0), model.DecisionAnalysis{FinalScore: 60})
	assert.False(t, result.Found())
	assert.Empty(t, result.Candidates)

	noProfile := model.PurchaseInput{ItemName: "Gadget", Cost: 100}
	result = solver.Solve(noProfile, engine.Analyze(noProfile))
	for _, c := range result.Candidates {
		assert.Equal(t, model.LeverPriceCut, c.Lever)
	}
}

func TestSolvedDeltasAreMinimalToTheStep(t *testing.T) {
	engine := decision.NewEngine()
	solver := NewSolver(engine)

	inputs := []model.PurchaseInput{
		gadget(1000, 3000, 2500, 0, 0),
		gadget(300, 5000, 2000, 0, 0),
		gadget(900, 4000, 1500, 1200, 1000),
		gadget(2500, 6000, 3000, 800, 4000),
		gadget(450, 2500, 1800, 300, 200),
	}

	for _, in := range inputs {
		analysis := engine.Analyze(in)
		if analysis.FinalScore >= model.BuyThreshold {
			continue
		}

		for _, c := range solver.Solve(in, analysis).Candidates {
			assert.Greater(t, c.Delta, 0.0, "lever %s", c.Lever)
			assert.GreaterOrEqual(t, engine.FinalScore(Apply(c.Lever, in, c.Delta)), model.BuyThreshold, "lever %s", c.Lever)

			step := 10.0
			if c.Lever.OneTime() {
				step = 50
			}
			if below := c.Delta - step; below >= 0 {
				assert.Less(t, engine.FinalScore(Apply(c.Lever, in, below)), model.BuyThreshold, "lever %s", c.Lever)
			}
		}
	}
}

func TestMonthsToGoal(t *testing.T) {
	got := MonthsToGoal(1000, model.Summary{MonthlySurplus: 300})
	require.NotNil(t, got)
	assert.Equal(t, 4, *got)

	got = MonthsToGoal(900, model.Summary{MonthlySurplus: 300})
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)

	assert.Nil(t, MonthsToGoal(1000, model.Summary{MonthlySurplus: 0}))
	assert.Nil(t, MonthsToGoal(1000, model.Summary{MonthlySurplus: -50}))
}
