// Package decision implements the weighted multi-criteria purchase decision model.
package decision

import (
	"sort"

	"github.com/Veraticus/worth-it/internal/model"
	"github.com/google/uuid"
)

// Engine scores purchases. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	scorers map[model.CriterionID]Scorer
	newID   func() string
}

// NewEngine creates an engine with the default scorer registry.
func NewEngine() *Engine {
	return &Engine{
		scorers: DefaultScorers(),
		newID:   uuid.NewString,
	}
}

// Analyze scores every criterion and aggregates them into a verdict.
func (e *Engine) Analyze(in model.PurchaseInput) model.DecisionAnalysis {
	scores, weights := e.score(in)
	final := Aggregate(scores)

	return model.DecisionAnalysis{
		ID:         e.newID(),
		Scores:     scores,
		Weights:    weights,
		FinalScore: final,
		Decision:   model.DecideScore(final),
		Confidence: model.ConfidenceFor(final),
	}
}

// FinalScore returns only the aggregated score for an input.
func (e *Engine) FinalScore(in model.PurchaseInput) float64 {
	scores, _ := e.score(in)
	return Aggregate(scores)
}

func (e *Engine) score(in model.PurchaseInput) (map[model.CriterionID]model.Criterion, model.CategoryWeights) {
	tolerance := model.RiskModerate
	if in.Profile != nil {
		tolerance = in.Profile.RiskTolerance.Normalize()
	}

	facts := NewFacts(in)
	criteria := BuildCriteria(tolerance)

	scores := make(map[model.CriterionID]model.Criterion, len(criteria))
	for _, c := range criteria {
		c.Score = neutralScore
		if scorer, ok := e.scorers[c.ID]; ok {
			c.Score = clamp(scorer(facts))
		}
		c.WeightedScore = c.Score * c.Weight
		scores[c.ID] = c
	}
	return scores, BuildCategoryWeights(tolerance)
}

// Aggregate computes 10 × Σ(score·weight) / Σ weight, clamped to [0,100].
// Criteria are summed in ID order so the result does not depend on map iteration.
func Aggregate(scores map[model.CriterionID]model.Criterion) float64 {
	ids := make([]model.CriterionID, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var weighted, totalWeight float64
	for _, id := range ids {
		c := scores[id]
		weighted += c.Score * c.Weight
		totalWeight += c.Weight
	}
	if totalWeight <= 0 {
		return neutralScore * 10
	}

	final := 10 * weighted / totalWeight
	switch {
	case final < 0:
		return 0
	case final > 100:
		return 100
	default:
		return final
	}
}
