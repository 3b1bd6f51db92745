// Package engine runs a purchase through the decision model, the flip solver
// and the spend classifier and collects the results into one report.
package engine

import (
	"context"
	"log/slog"

	"github.com/Veraticus/worth-it/internal/decision"
	"github.com/Veraticus/worth-it/internal/flip"
	"github.com/Veraticus/worth-it/internal/metrics"
	"github.com/Veraticus/worth-it/internal/model"
	"github.com/Veraticus/worth-it/internal/service"
)

// Config holds configuration options for the evaluator.
type Config struct {
	ParallelWorkers int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ParallelWorkers: 4,
	}
}

// Report is everything produced for one purchase.
type Report struct {
	Classification *model.ClassificationResult `json:"classification,omitempty"`
	Summary        *model.Summary              `json:"financialSummary,omitempty"`
	Flip           *flip.Result                `json:"flip,omitempty"`
	Input          model.PurchaseInput         `json:"input"`
	Explanation    string                      `json:"explanation"`
	Reasons        []model.Reason              `json:"reasons,omitempty"`
	Factors        decision.Factors            `json:"factors"`
	Analysis       model.DecisionAnalysis      `json:"analysis"`
}

// Evaluator orchestrates scoring, explanation, flip search and classification.
type Evaluator struct {
	decisions  *decision.Engine
	solver     *flip.Solver
	classifier service.SpendClassifier
	logger     *slog.Logger
	workers    int
}

// New creates an evaluator with the default configuration.
// A nil classifier skips spend classification.
func New(classifier service.SpendClassifier, logger *slog.Logger) *Evaluator {
	return NewWithConfig(classifier, logger, DefaultConfig())
}

// NewWithConfig creates an evaluator with custom configuration.
func NewWithConfig(classifier service.SpendClassifier, logger *slog.Logger, config Config) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	if config.ParallelWorkers <= 0 {
		config.ParallelWorkers = DefaultConfig().ParallelWorkers
	}

	decisions := decision.NewEngine()
	return &Evaluator{
		decisions:  decisions,
		solver:     flip.NewSolver(decisions),
		classifier: classifier,
		logger:     logger,
		workers:    config.ParallelWorkers,
	}
}

// Evaluate scores one purchase. Flip suggestions and reasons are only
// produced for Don't Buy verdicts.
func (e *Evaluator) Evaluate(ctx context.Context, in model.PurchaseInput) Report {
	analysis := e.decisions.Analyze(in)
	metrics.Decisions.WithLabelValues(string(analysis.Decision)).Inc()

	report := Report{
		Input:       in,
		Analysis:    analysis,
		Summary:     in.Summary(),
		Factors:     decision.TopFactors(analysis),
		Explanation: decision.Explain(analysis),
		Reasons:     decision.Reasons(analysis, in),
	}

	if analysis.Decision == model.DecisionDontBuy {
		result := e.solver.Solve(in, analysis)
		report.Flip = &result

		outcome := metrics.FlipNone
		if result.Found() {
			outcome = metrics.FlipFound
		}
		metrics.FlipSearches.WithLabelValues(outcome).Inc()
	}

	if e.classifier != nil {
		classification := e.classifier.Classify(ctx, in.ItemName, in.Cost)
		report.Classification = &classification
	}

	e.logger.Debug("purchase evaluated",
		"id", analysis.ID,
		"item", in.ItemName,
		"cost", in.Cost,
		"score", analysis.FinalScore,
		"decision", analysis.Decision,
		"confidence", analysis.Confidence)

	return report
}
