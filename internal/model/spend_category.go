package model

import "strings"

// SpendCategory buckets a purchase for downstream prompt selection.
type SpendCategory string

// Spend categories. DiscretionaryMedium is referenced by prompt templates but is
// never produced by the classifier; its price band is undecided.
const (
	SpendEssentialDaily      SpendCategory = "ESSENTIAL_DAILY"
	SpendDiscretionarySmall  SpendCategory = "DISCRETIONARY_SMALL"
	SpendDiscretionaryMedium SpendCategory = "DISCRETIONARY_MEDIUM"
	SpendHighValue           SpendCategory = "HIGH_VALUE"
)

// ClassifierCategories are the values the external categorizer may return.
var ClassifierCategories = []SpendCategory{
	SpendEssentialDaily,
	SpendDiscretionarySmall,
	SpendHighValue,
}

// ParseClassifierCategory validates a raw categorizer response.
func ParseClassifierCategory(raw string) (SpendCategory, bool) {
	candidate := SpendCategory(strings.ToUpper(strings.TrimSpace(raw)))
	for _, c := range ClassifierCategories {
		if c == candidate {
			return c, true
		}
	}
	return "", false
}

// ClassificationResult is what callers of the classifier receive.
type ClassificationResult struct {
	Category SpendCategory `json:"category"`
	Cached   bool          `json:"cached"`
}
