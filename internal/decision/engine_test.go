package decision

import (
	"testing"

	"github.com/Veraticus/worth-it/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineAnalyze(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name           string
		input          model.PurchaseInput
		wantScore      float64
		wantDecision   model.Decision
		wantConfidence model.Confidence
	}{
		{
			name: "stretched budget",
			input: model.PurchaseInput{
				ItemName: "Gadget",
				Cost:     1000,
				Profile:  profile(3000, 2500, 0, 0),
			},
			wantScore:      45,
			wantDecision:   model.DecisionDontBuy,
			wantConfidence: model.ConfidenceLow,
		},
		{
			name: "needed and affordable",
			input: model.PurchaseInput{
				ItemName:  "Work boots",
				Purpose:   "Replace my broken boots for work",
				Frequency: model.FrequencyDaily,
				Cost:      100,
				Profile:   profile(8000, 3000, 0, 30000),
			},
			wantScore:      82.2,
			wantDecision:   model.DecisionBuy,
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "no data at all",
			input:          model.PurchaseInput{},
			wantScore:      50,
			wantDecision:   model.DecisionDontBuy,
			wantConfidence: model.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := engine.Analyze(tt.input)

			assert.InDelta(t, tt.wantScore, analysis.FinalScore, 1e-9)
			assert.Equal(t, tt.wantDecision, analysis.Decision)
			assert.Equal(t, tt.wantConfidence, analysis.Confidence)
			assert.NotEmpty(t, analysis.ID)
			assert.Len(t, analysis.Scores, 12)
			assert.InDelta(t, analysis.FinalScore, engine.FinalScore(tt.input), 1e-12)
		})
	}
}

func TestEngineAnalyzeBounds(t *testing.T) {
	engine := NewEngine()

	inputs := []model.PurchaseInput{
		{ItemName: "Yacht", Cost: 250000, Frequency: model.FrequencyRarely, Purpose: "everyone has one, impulse", Profile: profile(2000, 2500, 1500, 0)},
		{ItemName: "Toothpaste", Cost: 3, Frequency: model.FrequencyDaily, Purpose: "family", Profile: profile(10000, 1000, 0, 100000)},
		{ItemName: "Laptop", Cost: 1200, Alternative: &model.Alternative{Name: "Refurb", Price: 500}, Profile: profile(0, 0, 0, 0)},
		{ItemName: "Thing", Cost: 0},
	}

	for _, tolerance := range []model.RiskTolerance{model.RiskLow, model.RiskModerate, model.RiskHigh, ""} {
		for _, in := range inputs {
			in := in.Clone()
			if in.Profile != nil {
				in.Profile.RiskTolerance = tolerance
			}

			analysis := engine.Analyze(in)
			assert.GreaterOrEqual(t, analysis.FinalScore, 0.0)
			assert.LessOrEqual(t, analysis.FinalScore, 100.0)
			assert.InDelta(t, 1.0, analysis.Weights.Sum(), 1e-6)

			for id, c := range analysis.Scores {
				assert.GreaterOrEqual(t, c.Score, 0.0, "criterion %s", id)
				assert.LessOrEqual(t, c.Score, 10.0, "criterion %s", id)
				assert.InDelta(t, c.Score*c.Weight, c.WeightedScore, 1e-12)
			}
		}
	}
}

func TestEngineClampsScorerOutput(t *testing.T) {
	engine := &Engine{
		scorers: map[model.CriterionID]Scorer{
			model.CriterionAffordability: func(*Facts) float64 { return 42 },
			model.CriterionNecessity:     func(*Facts) float64 { return -3 },
		},
		newID: func() string { return "fixed" },
	}

	analysis := engine.Analyze(model.PurchaseInput{ItemName: "x", Cost: 1})

	assert.Equal(t, "fixed", analysis.ID)
	assert.Equal(t, 10.0, analysis.Score(model.CriterionAffordability))
	assert.Equal(t, 0.0, analysis.Score(model.CriterionNecessity))
	// Criteria without a scorer fall back to the neutral score.
	assert.Equal(t, neutralScore, analysis.Score(model.CriterionLongevity))
}

func TestAggregate(t *testing.T) {
	t.Run("divides by the actual weight sum", func(t *testing.T) {
		scores := map[model.CriterionID]model.Criterion{
			"a": {Score: 10, Weight: 0.25},
			"b": {Score: 0, Weight: 0.25},
		}
		assert.InDelta(t, 50.0, Aggregate(scores), 1e-12)
	})

	t.Run("empty is neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, Aggregate(nil))
	})

	t.Run("risk tolerance changes the outcome", func(t *testing.T) {
		engine := NewEngine()
		in := model.PurchaseInput{ItemName: "Gadget", Cost: 1000, Profile: profile(3000, 2500, 0, 0)}

		low := in.Clone()
		low.Profile.RiskTolerance = model.RiskLow
		high := in.Clone()
		high.Profile.RiskTolerance = model.RiskHigh

		require.NotEqual(t, engine.FinalScore(low), engine.FinalScore(high))
	})
}
