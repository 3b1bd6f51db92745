package model

// Decision is the verdict of the decision model.
type Decision string

// Decision values.
const (
	DecisionBuy     Decision = "Buy"
	DecisionDontBuy Decision = "Don't Buy"
)

// Confidence expresses how far the final score sits from the undecided middle.
type Confidence string

// Confidence bands.
const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// BuyThreshold is the minimum final score for a Buy verdict.
const BuyThreshold = 60.0

// DecideScore maps a final score to a decision.
func DecideScore(finalScore float64) Decision {
	if finalScore >= BuyThreshold {
		return DecisionBuy
	}
	return DecisionDontBuy
}

// ConfidenceFor maps a final score to its confidence band.
func ConfidenceFor(finalScore float64) Confidence {
	switch {
	case finalScore >= 80 || finalScore <= 20:
		return ConfidenceHigh
	case finalScore >= 65 || finalScore <= 35:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DecisionAnalysis is the per-request output of the decision model.
type DecisionAnalysis struct {
	Scores     map[CriterionID]Criterion `json:"scores"`
	Weights    CategoryWeights           `json:"categoryWeights"`
	ID         string                    `json:"id"`
	Decision   Decision                  `json:"decision"`
	Confidence Confidence                `json:"confidence"`
	FinalScore float64                   `json:"finalScore"`
}

// Score returns the score of a criterion, or 0 when it was not scored.
func (a DecisionAnalysis) Score(id CriterionID) float64 {
	return a.Scores[id].Score
}

// Reason is a structured explanation for a Don't Buy outcome.
type Reason struct {
	Factor       CriterionID `json:"factor"`
	Label        string      `json:"label"`
	Message      string      `json:"message"`
	ImpactWeight float64     `json:"impactWeight"`
}
