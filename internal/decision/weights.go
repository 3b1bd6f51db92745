package decision

import (
	"math"

	"github.com/Veraticus/worth-it/internal/model"
)

// normalizationEpsilon is how far the category weights may drift from 1.0
// before they are renormalized.
const normalizationEpsilon = 0.001

var baseCategoryWeights = model.CategoryWeights{
	model.CategoryFinancial:     0.40,
	model.CategoryUtility:       0.30,
	model.CategoryPsychological: 0.20,
	model.CategoryRisk:          0.10,
}

var toleranceAdjustments = map[model.RiskTolerance]model.CategoryWeights{
	model.RiskLow: {
		model.CategoryRisk:          0.05,
		model.CategoryUtility:       -0.03,
		model.CategoryPsychological: -0.02,
	},
	model.RiskHigh: {
		model.CategoryRisk:          -0.03,
		model.CategoryUtility:       0.02,
		model.CategoryPsychological: 0.01,
	},
}

type criterionDef struct {
	id          model.CriterionID
	name        string
	description string
	category    model.CriterionCategory
	relative    float64
}

// criterionDefs lists every criterion with its weight inside its category.
// Relative weights sum to 1 per category.
var criterionDefs = []criterionDef{
	{model.CriterionAffordability, "Affordability", "Cost relative to monthly net income", model.CategoryFinancial, 0.35},
	{model.CriterionValueForMoney, "Value for money", "Price compared with known alternatives", model.CategoryFinancial, 0.20},
	{model.CriterionOpportunityCost, "Opportunity cost", "What else the money could be doing", model.CategoryFinancial, 0.25},
	{model.CriterionFinancialGoalAlignment, "Goal alignment", "Fit with the stated financial goal", model.CategoryFinancial, 0.20},
	{model.CriterionNecessity, "Necessity", "Need versus want", model.CategoryUtility, 0.40},
	{model.CriterionLongevity, "Longevity", "How long the item keeps delivering value", model.CategoryUtility, 0.30},
	{model.CriterionFrequencyOfUse, "Frequency of use", "How often the item will be used", model.CategoryUtility, 0.30},
	{model.CriterionEmotionalValue, "Emotional value", "Meaningful purpose versus impulse", model.CategoryPsychological, 0.40},
	{model.CriterionSocialFactors, "Social factors", "Shared value versus peer pressure", model.CategoryPsychological, 0.20},
	{model.CriterionBuyersRemorse, "Buyer's remorse", "Likelihood of regretting the purchase", model.CategoryPsychological, 0.40},
	{model.CriterionFinancialRisk, "Financial risk", "Exposure given savings and debt load", model.CategoryRisk, 0.60},
	{model.CriterionAlternativeAvailability, "Alternatives", "Whether a cheaper option exists", model.CategoryRisk, 0.40},
}

// BuildCategoryWeights applies the risk tolerance adjustments to the base
// category weights and renormalizes them when they drift from 1.0.
func BuildCategoryWeights(tolerance model.RiskTolerance) model.CategoryWeights {
	adjust := toleranceAdjustments[tolerance.Normalize()]

	weights := make(model.CategoryWeights, len(baseCategoryWeights))
	for category, base := range baseCategoryWeights {
		weights[category] = base + adjust[category]
	}

	sum := weights.Sum()
	if math.Abs(sum-1.0) > normalizationEpsilon && sum > 0 {
		for category := range weights {
			weights[category] /= sum
		}
	}

	return weights
}

// BuildCriteria returns every criterion with its absolute weight for the
// given risk tolerance. Scores are left at zero.
func BuildCriteria(tolerance model.RiskTolerance) []model.Criterion {
	weights := BuildCategoryWeights(tolerance)

	criteria := make([]model.Criterion, 0, len(criterionDefs))
	for _, def := range criterionDefs {
		criteria = append(criteria, model.Criterion{
			ID:             def.id,
			Name:           def.name,
			Description:    def.description,
			Category:       def.category,
			RelativeWeight: def.relative,
			Weight:         weights[def.category] * def.relative,
		})
	}
	return criteria
}

// CriterionName returns the display name of a criterion.
func CriterionName(id model.CriterionID) string {
	for _, def := range criterionDefs {
		if def.id == id {
			return def.name
		}
	}
	return string(id)
}
