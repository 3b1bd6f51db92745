package model

// RiskTolerance shifts the category weights of the decision model.
type RiskTolerance string

// Risk tolerance levels.
const (
	RiskLow      RiskTolerance = "low"
	RiskModerate RiskTolerance = "moderate"
	RiskHigh     RiskTolerance = "high"
)

// Normalize maps unknown or empty values to RiskModerate.
func (r RiskTolerance) Normalize() RiskTolerance {
	switch r {
	case RiskLow, RiskModerate, RiskHigh:
		return r
	default:
		return RiskModerate
	}
}

// FinancialGoal is the user's stated primary money goal.
type FinancialGoal string

// Financial goals understood by the goal alignment criterion.
const (
	GoalSave    FinancialGoal = "save"
	GoalDebt    FinancialGoal = "debt"
	GoalInvest  FinancialGoal = "invest"
	GoalBalance FinancialGoal = "balance"
)

// maxEmergencyFundMonths caps the emergency fund figure so it stays finite.
const maxEmergencyFundMonths = 120.0

// FinancialProfile holds the raw financial snapshot supplied by the user.
// Derived figures are never stored here; call Summarize after any change.
type FinancialProfile struct {
	RiskTolerance   RiskTolerance `json:"riskTolerance,omitempty"`
	FinancialGoal   FinancialGoal `json:"financialGoal,omitempty"`
	MonthlyIncome   float64       `json:"monthlyIncome"`
	MonthlyExpenses float64       `json:"monthlyExpenses"`
	DebtPayments    float64       `json:"debtPayments"`
	CurrentSavings  float64       `json:"currentSavings"`
}

// Summary contains the figures derived from a FinancialProfile.
type Summary struct {
	MonthlyNetIncome    float64 `json:"monthlyNetIncome"`
	MonthlySurplus      float64 `json:"monthlySurplus"`
	DebtToIncomeRatio   float64 `json:"debtToIncomeRatio"`
	EmergencyFundMonths float64 `json:"emergencyFundMonths"`
	DebtPayments        float64 `json:"debtPayments"`
}

// Summarize computes the derived summary from the current raw fields.
func (p FinancialProfile) Summarize() Summary {
	s := Summary{
		MonthlyNetIncome: p.MonthlyIncome,
		MonthlySurplus:   p.MonthlyIncome - p.MonthlyExpenses - p.DebtPayments,
		DebtPayments:     p.DebtPayments,
	}

	switch {
	case p.MonthlyIncome > 0:
		s.DebtToIncomeRatio = p.DebtPayments / p.MonthlyIncome
	case p.DebtPayments > 0:
		s.DebtToIncomeRatio = 1
	}

	switch {
	case p.MonthlyExpenses > 0:
		s.EmergencyFundMonths = p.CurrentSavings / p.MonthlyExpenses
		if s.EmergencyFundMonths > maxEmergencyFundMonths {
			s.EmergencyFundMonths = maxEmergencyFundMonths
		}
	case p.CurrentSavings > 0:
		s.EmergencyFundMonths = maxEmergencyFundMonths
	}
	if s.EmergencyFundMonths < 0 {
		s.EmergencyFundMonths = 0
	}

	return s
}
