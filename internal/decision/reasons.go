package decision

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/worth-it/internal/model"
)

const (
	maxFactors         = 3
	positiveThreshold  = 7.0
	negativeThreshold  = 4.0
	minEmergencyMonths = 3.0
)

// Factors are the criteria that moved the verdict the most in each direction.
type Factors struct {
	Positive []model.Criterion `json:"positive"`
	Negative []model.Criterion `json:"negative"`
}

// TopFactors picks up to three strong criteria (score ≥ 7) ranked by weighted
// score and up to three weak ones (score ≤ 4) ranked by weighted shortfall.
func TopFactors(a model.DecisionAnalysis) Factors {
	var positive, negative []model.Criterion
	for _, c := range a.Scores {
		if c.Score >= positiveThreshold {
			positive = append(positive, c)
		}
		if c.Score <= negativeThreshold {
			negative = append(negative, c)
		}
	}

	sort.Slice(positive, func(i, j int) bool {
		if positive[i].WeightedScore != positive[j].WeightedScore {
			return positive[i].WeightedScore > positive[j].WeightedScore
		}
		return positive[i].ID < positive[j].ID
	})
	sort.Slice(negative, func(i, j int) bool {
		si, sj := shortfall(negative[i]), shortfall(negative[j])
		if si != sj {
			return si > sj
		}
		return negative[i].ID < negative[j].ID
	})

	return Factors{
		Positive: firstN(positive, maxFactors),
		Negative: firstN(negative, maxFactors),
	}
}

func shortfall(c model.Criterion) float64 {
	return (10 - c.Score) * c.Weight
}

func firstN(cs []model.Criterion, n int) []model.Criterion {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}

// phrases holds the canned explanation per criterion for the high, medium
// and low score bands, in that order.
var phrases = map[model.CriterionID][3]string{
	model.CriterionAffordability:           {"it fits comfortably in your monthly budget", "it takes a noticeable bite out of this month's income", "it is expensive relative to your monthly income"},
	model.CriterionValueForMoney:           {"the price compares well with the alternatives", "the price is reasonable", "a cheaper option offers similar value"},
	model.CriterionOpportunityCost:         {"your savings and debt position can absorb it", "the money could be working harder elsewhere", "this money is needed for your safety net or debt"},
	model.CriterionFinancialGoalAlignment:  {"it is consistent with your financial goal", "it is neutral towards your financial goal", "it works against your financial goal"},
	model.CriterionNecessity:               {"it covers a genuine need", "it is somewhere between a need and a want", "it is more of a want than a need"},
	model.CriterionLongevity:               {"it should last a long time", "it will last a while", "its value is short-lived"},
	model.CriterionFrequencyOfUse:          {"you will use it often", "you will use it now and then", "you will rarely use it"},
	model.CriterionEmotionalValue:          {"it carries real personal meaning", "its emotional pull is modest", "it looks like an impulse purchase"},
	model.CriterionSocialFactors:           {"it will be shared with or valued by others", "social factors are neutral", "it seems driven by outside pressure"},
	model.CriterionBuyersRemorse:           {"regret is unlikely", "there is some risk of regret", "there is a real risk of buyer's remorse"},
	model.CriterionFinancialRisk:           {"your finances can handle surprises", "your cushion is adequate but thin", "it leaves you exposed if something goes wrong"},
	model.CriterionAlternativeAvailability: {"this is already the better-priced option", "alternatives are unclear", "a cheaper alternative is available"},
}

// Phrase returns the canned phrase for a criterion at its score band.
func Phrase(c model.Criterion) string {
	p, ok := phrases[c.ID]
	if !ok {
		return c.Name
	}
	switch {
	case c.Score >= positiveThreshold:
		return p[0]
	case c.Score >= 5:
		return p[1]
	default:
		return p[2]
	}
}

// Explain builds a short plain-language explanation of an analysis.
func Explain(a model.DecisionAnalysis) string {
	factors := TopFactors(a)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (score %.0f, %s confidence).", a.Decision, a.FinalScore, strings.ToLower(string(a.Confidence)))

	if len(factors.Positive) > 0 {
		b.WriteString(" In favour: ")
		b.WriteString(joinPhrases(factors.Positive))
		b.WriteString(".")
	}
	if len(factors.Negative) > 0 {
		b.WriteString(" Against: ")
		b.WriteString(joinPhrases(factors.Negative))
		b.WriteString(".")
	}
	return b.String()
}

func joinPhrases(cs []model.Criterion) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = Phrase(c)
	}
	return strings.Join(parts, "; ")
}

// Reasons returns the structured reasons behind a Don't Buy verdict.
// Buy verdicts have none.
func Reasons(a model.DecisionAnalysis, in model.PurchaseInput) []model.Reason {
	if a.Decision != model.DecisionDontBuy {
		return nil
	}

	summary := in.Summary()
	var reasons []model.Reason

	if c, ok := a.Scores[model.CriterionAffordability]; ok && c.Score <= negativeThreshold {
		reasons = append(reasons, model.Reason{
			Factor:       c.ID,
			Label:        c.Name,
			Message:      affordabilityMessage(in.Cost, summary),
			ImpactWeight: c.Weight,
		})
	}

	if c, ok := a.Scores[model.CriterionFinancialRisk]; ok && c.Score <= negativeThreshold &&
		summary != nil && summary.EmergencyFundMonths < minEmergencyMonths {
		reasons = append(reasons, model.Reason{
			Factor: c.ID,
			Label:  c.Name,
			Message: fmt.Sprintf("Your savings cover %.1f months of expenses; aim for at least %.0f months before a purchase like this.",
				summary.EmergencyFundMonths, minEmergencyMonths),
			ImpactWeight: c.Weight,
		})
	}

	return reasons
}

func affordabilityMessage(cost float64, summary *model.Summary) string {
	if summary == nil || summary.MonthlyNetIncome <= 0 {
		return fmt.Sprintf("There is no monthly net income to absorb a $%.0f purchase.", cost)
	}
	pct := cost * 100 / summary.MonthlyNetIncome
	return fmt.Sprintf("At $%.0f this purchase is %.0f%% of your monthly net income of $%.0f.",
		cost, pct, summary.MonthlyNetIncome)
}
