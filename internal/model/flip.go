package model

// Lever is one independently adjustable input the flip solver can move.
type Lever string

// Flip levers.
const (
	LeverSavingsBoost   Lever = "savingsBoost"
	LeverDebtReduction  Lever = "debtReduction"
	LeverIncomeIncrease Lever = "incomeIncrease"
	LeverExpenseCut     Lever = "expenseCut"
	LeverPriceCut       Lever = "priceCut"
)

// Unit is the unit of a flip delta.
type Unit string

// Delta units.
const (
	UnitUSD         Unit = "USD"
	UnitUSDPerMonth Unit = "USD_per_month"
)

// OneTime reports whether the lever is a one-off amount rather than a monthly change.
func (l Lever) OneTime() bool {
	return l == LeverSavingsBoost || l == LeverPriceCut
}

// Unit returns the unit the lever's delta is expressed in.
func (l Lever) Unit() Unit {
	if l.OneTime() {
		return UnitUSD
	}
	return UnitUSDPerMonth
}

// FlipSuggestion is the smallest change to one lever that turns the verdict into Buy.
type FlipSuggestion struct {
	TimelineMonths *int    `json:"timelineMonths,omitempty"`
	Lever          Lever   `json:"lever"`
	Unit           Unit    `json:"unit"`
	Message        string  `json:"message"`
	Delta          float64 `json:"delta"`
}
