// Package flip finds the smallest single change that turns a Don't Buy into a Buy.
package flip

import (
	"math"

	"github.com/Veraticus/worth-it/internal/model"
)

// Iterations is the number of bisection steps per lever.
const Iterations = 18

// Scorer computes the final score of a purchase.
type Scorer interface {
	FinalScore(in model.PurchaseInput) float64
}

// Result holds the two suggested paths plus every feasible lever.
// PathA is the cheapest one-time change, or the cheapest monthly change when
// no one-time change works. PathB is the price cut on its own.
type Result struct {
	PathA      *model.FlipSuggestion  `json:"pathA,omitempty"`
	PathB      *model.FlipSuggestion  `json:"pathB,omitempty"`
	Candidates []model.FlipSuggestion `json:"candidates,omitempty"`
}

// Found reports whether any lever can flip the decision.
func (r Result) Found() bool {
	return r.PathA != nil || r.PathB != nil
}

// Solver searches each lever independently. Every trial scores a fresh clone
// of the input, so the caller's input is never modified.
type Solver struct {
	scorer    Scorer
	threshold float64
}

// NewSolver creates a solver that scores trials with s.
func NewSolver(s Scorer) *Solver {
	return &Solver{scorer: s, threshold: model.BuyThreshold}
}

// Solve returns flip suggestions for a Don't Buy analysis. Buy analyses yield an empty result.
func (s *Solver) Solve(in model.PurchaseInput, analysis model.DecisionAnalysis) Result {
	var result Result
	if analysis.FinalScore >= s.threshold {
		return result
	}

	for _, l := range levers {
		suggestion := s.solveLever(l, in)
		if suggestion == nil {
			continue
		}
		result.Candidates = append(result.Candidates, *suggestion)
		if l.name == model.LeverPriceCut {
			result.PathB = suggestion
		}
	}

	result.PathA = pickPathA(result.Candidates)
	return result
}

// Lever runs the search for a single lever, returning nil when it cannot flip the decision.
func (s *Solver) Lever(name model.Lever, in model.PurchaseInput) *model.FlipSuggestion {
	for _, l := range levers {
		if l.name == name {
			return s.solveLever(l, in)
		}
	}
	return nil
}

func (s *Solver) solveLever(l lever, in model.PurchaseInput) *model.FlipSuggestion {
	bound := l.bound(in)
	if bound <= 0 || !s.passes(l, in, bound) {
		return nil
	}

	lo, hi := 0.0, bound
	for i := 0; i < Iterations; i++ {
		mid := (lo + hi) / 2
		if s.passes(l, in, mid) {
			hi = mid
		} else {
			lo = mid
		}
	}

	delta, ok := s.round(l, in, hi)
	if !ok {
		return nil
	}
	suggestion := &model.FlipSuggestion{
		Lever:   l.name,
		Unit:    l.name.Unit(),
		Delta:   delta,
		Message: l.message(in, delta),
	}
	if l.name == model.LeverSavingsBoost {
		if summary := in.Summary(); summary != nil {
			suggestion.TimelineMonths = MonthsToGoal(delta, *summary)
		}
	}
	return suggestion
}

// round snaps delta to the lever's step. A rounded value that no longer
// flips the decision is bumped up one step, never past the lever's cap.
// It reports false when even the bumped value fails.
func (s *Solver) round(l lever, in model.PurchaseInput, delta float64) (float64, bool) {
	limit := l.cap(in)

	rounded := math.Round(delta/l.step) * l.step
	if rounded > limit {
		rounded = limit
	}
	if s.passes(l, in, rounded) {
		return rounded, true
	}

	rounded += l.step
	if rounded > limit {
		rounded = limit
	}
	return rounded, s.passes(l, in, rounded)
}

func (s *Solver) passes(l lever, in model.PurchaseInput, delta float64) bool {
	return s.scorer.FinalScore(Apply(l.name, in, delta)) >= s.threshold
}

// Apply returns a copy of in with the lever moved by delta.
func Apply(name model.Lever, in model.PurchaseInput, delta float64) model.PurchaseInput {
	trial := in.Clone()
	for _, l := range levers {
		if l.name != name {
			continue
		}
		if trial.Profile == nil && name != model.LeverPriceCut {
			return trial
		}
		l.apply(&trial, delta)
	}
	return trial
}

func pickPathA(candidates []model.FlipSuggestion) *model.FlipSuggestion {
	var oneTime, recurring *model.FlipSuggestion
	for i := range candidates {
		c := &candidates[i]
		if c.Lever.OneTime() {
			if oneTime == nil || c.Delta < oneTime.Delta {
				oneTime = c
			}
			continue
		}
		if recurring == nil || c.Delta < recurring.Delta {
			recurring = c
		}
	}
	if oneTime != nil {
		return oneTime
	}
	return recurring
}

// MonthsToGoal is how many months of surplus it takes to save amount.
// It returns nil when there is no surplus to save from.
func MonthsToGoal(amount float64, summary model.Summary) *int {
	if summary.MonthlySurplus <= 0 {
		return nil
	}
	months := int(math.Ceil(amount / summary.MonthlySurplus))
	return &months
}
