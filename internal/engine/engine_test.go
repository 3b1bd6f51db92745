package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/worth-it/internal/metrics"
	"github.com/Veraticus/worth-it/internal/model"
)

// stubClassifier returns a fixed category and records what it was asked.
type stubClassifier struct {
	category model.SpendCategory
	items    []string
	mu       sync.Mutex
}

func (s *stubClassifier) Classify(_ context.Context, itemName string, _ float64) model.ClassificationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, itemName)
	return model.ClassificationResult{Category: s.category}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func boots() model.PurchaseInput {
	return model.PurchaseInput{
		ItemName:  "Work boots",
		Purpose:   "Replace my broken boots for work",
		Frequency: model.FrequencyDaily,
		Cost:      100,
		Profile: &model.FinancialProfile{
			MonthlyIncome:   8000,
			MonthlyExpenses: 3000,
			CurrentSavings:  30000,
		},
	}
}

func gadget() model.PurchaseInput {
	return model.PurchaseInput{
		ItemName: "Gadget",
		Cost:     1000,
		Profile: &model.FinancialProfile{
			MonthlyIncome:   3000,
			MonthlyExpenses: 2500,
		},
	}
}

func TestEvaluateBuy(t *testing.T) {
	classifier := &stubClassifier{category: model.SpendEssentialDaily}
	e := New(classifier, quietLogger())

	before := testutil.ToFloat64(metrics.Decisions.WithLabelValues(string(model.DecisionBuy)))

	report := e.Evaluate(context.Background(), boots())

	assert.Equal(t, model.DecisionBuy, report.Analysis.Decision)
	assert.InDelta(t, 82.2, report.Analysis.FinalScore, 1e-9)
	assert.NotEmpty(t, report.Analysis.ID)
	assert.Nil(t, report.Flip)
	assert.Nil(t, report.Reasons)
	assert.NotEmpty(t, report.Factors.Positive)
	assert.Contains(t, report.Explanation, "Buy (score 82, high confidence).")

	require.NotNil(t, report.Summary)
	assert.InDelta(t, 5000.0, report.Summary.MonthlySurplus, 1e-9)

	require.NotNil(t, report.Classification)
	assert.Equal(t, model.SpendEssentialDaily, report.Classification.Category)
	assert.Equal(t, []string{"Work boots"}, classifier.items)

	after := testutil.ToFloat64(metrics.Decisions.WithLabelValues(string(model.DecisionBuy)))
	assert.InDelta(t, 1.0, after-before, 1e-9)
}

func TestEvaluateDontBuy(t *testing.T) {
	e := New(nil, quietLogger())

	before := testutil.ToFloat64(metrics.FlipSearches.WithLabelValues(metrics.FlipFound))

	in := gadget()
	report := e.Evaluate(context.Background(), in)

	assert.Equal(t, model.DecisionDontBuy, report.Analysis.Decision)
	assert.InDelta(t, 45.0, report.Analysis.FinalScore, 1e-9)
	assert.NotEmpty(t, report.Reasons)
	assert.Nil(t, report.Classification)

	require.NotNil(t, report.Flip)
	require.NotNil(t, report.Flip.PathB)
	assert.Equal(t, model.LeverPriceCut, report.Flip.PathB.Lever)
	assert.InDelta(t, 850.0, report.Flip.PathB.Delta, 1e-9)

	assert.InDelta(t, 1000.0, in.Cost, 1e-9, "input must not be modified by the flip search")
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.FlipSearches.WithLabelValues(metrics.FlipFound))-before, 1e-9)
}

func TestEvaluateBatch(t *testing.T) {
	classifier := &stubClassifier{category: model.SpendDiscretionarySmall}
	e := NewWithConfig(classifier, quietLogger(), Config{ParallelWorkers: 3})

	inputs := []model.PurchaseInput{boots(), gadget(), boots(), gadget(), gadget()}

	var calls atomic.Int32
	reports, summary, err := e.EvaluateBatch(context.Background(), inputs, func() { calls.Add(1) })
	require.NoError(t, err)

	require.Len(t, reports, len(inputs))
	for i, r := range reports {
		assert.Equal(t, inputs[i].ItemName, r.Input.ItemName, "report %d out of order", i)
	}
	assert.Equal(t, int32(len(inputs)), calls.Load())

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.Buy)
	assert.Equal(t, 3, summary.DontBuy)
	assert.Equal(t, 3, summary.Flippable)
	assert.Equal(t, 5, summary.Categories[model.SpendDiscretionarySmall])
}

func TestEvaluateBatchEmpty(t *testing.T) {
	e := New(nil, quietLogger())

	reports, summary, err := e.EvaluateBatch(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.Equal(t, 0, summary.Total)
}

func TestEvaluateBatchCanceled(t *testing.T) {
	e := New(nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, summary, err := e.EvaluateBatch(ctx, []model.PurchaseInput{boots(), gadget()}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reports)
	assert.Equal(t, 0, summary.Total)
}
