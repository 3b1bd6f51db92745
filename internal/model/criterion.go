package model

// CriterionID identifies one of the twelve decision criteria.
type CriterionID string

// Decision criteria.
const (
	CriterionAffordability           CriterionID = "affordability"
	CriterionValueForMoney           CriterionID = "valueForMoney"
	CriterionOpportunityCost         CriterionID = "opportunityCost"
	CriterionFinancialGoalAlignment  CriterionID = "financialGoalAlignment"
	CriterionNecessity               CriterionID = "necessity"
	CriterionLongevity               CriterionID = "longevity"
	CriterionFrequencyOfUse          CriterionID = "frequencyOfUse"
	CriterionEmotionalValue          CriterionID = "emotionalValue"
	CriterionSocialFactors           CriterionID = "socialFactors"
	CriterionBuyersRemorse           CriterionID = "buyersRemorse"
	CriterionFinancialRisk           CriterionID = "financialRisk"
	CriterionAlternativeAvailability CriterionID = "alternativeAvailability"
)

// CriterionCategory groups criteria for category-level weighting.
type CriterionCategory string

// Criterion categories.
const (
	CategoryFinancial     CriterionCategory = "financial"
	CategoryUtility       CriterionCategory = "utility"
	CategoryPsychological CriterionCategory = "psychological"
	CategoryRisk          CriterionCategory = "risk"
)

// CriterionCategories lists the categories in a stable order.
var CriterionCategories = []CriterionCategory{
	CategoryFinancial,
	CategoryUtility,
	CategoryPsychological,
	CategoryRisk,
}

// CategoryWeights maps each category to its share of the final score.
type CategoryWeights map[CriterionCategory]float64

// Sum returns the total weight across categories.
func (w CategoryWeights) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// Criterion is one scored, weighted factor of a decision.
type Criterion struct {
	ID             CriterionID       `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       CriterionCategory `json:"category"`
	RelativeWeight float64           `json:"relativeWeight"`
	Weight         float64           `json:"weight"`
	Score          float64           `json:"score"`
	WeightedScore  float64           `json:"weightedScore"`
}
