// Package model defines the core domain types of the purchase decision model.
package model

// Frequency describes how often the purchased item will be used.
type Frequency string

// Usage frequencies.
const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
	FrequencyRarely  Frequency = "Rarely"
	FrequencyOneTime Frequency = "One-time"
	FrequencyUnknown Frequency = ""
)

// Valid reports whether f is one of the known frequencies (including empty).
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyRarely, FrequencyOneTime, FrequencyUnknown:
		return true
	}
	return false
}

// Alternative is a competing offer for the same need.
type Alternative struct {
	Name     string  `json:"name"`
	Retailer string  `json:"retailer,omitempty"`
	Price    float64 `json:"price"`
}

// PurchaseInput is everything the decision model needs about one prospective purchase.
type PurchaseInput struct {
	Profile     *FinancialProfile `json:"financialProfile,omitempty"`
	Alternative *Alternative      `json:"alternative,omitempty"`
	ItemName    string            `json:"itemName"`
	Purpose     string            `json:"purpose,omitempty"`
	Frequency   Frequency         `json:"frequency,omitempty"`
	Cost        float64           `json:"cost"`
}

// Clone returns a deep copy that shares no pointers with the receiver.
func (in PurchaseInput) Clone() PurchaseInput {
	out := in
	if in.Profile != nil {
		p := *in.Profile
		out.Profile = &p
	}
	if in.Alternative != nil {
		a := *in.Alternative
		out.Alternative = &a
	}
	return out
}

// Summary returns the derived profile summary, or nil when no profile is attached.
func (in PurchaseInput) Summary() *Summary {
	if in.Profile == nil {
		return nil
	}
	s := in.Profile.Summarize()
	return &s
}

// CheaperAlternative reports whether a valid alternative undercuts the cost,
// returning the savings as a percentage of the cost.
func (in PurchaseInput) CheaperAlternative() (float64, bool) {
	if in.Alternative == nil || in.Alternative.Price <= 0 || in.Cost <= 0 {
		return 0, false
	}
	if in.Alternative.Price >= in.Cost {
		return 0, false
	}
	return (in.Cost - in.Alternative.Price) * 100 / in.Cost, true
}
