package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		profile FinancialProfile
		want    Summary
	}{
		{
			name:    "typical",
			profile: FinancialProfile{MonthlyIncome: 5000, MonthlyExpenses: 2000, DebtPayments: 500, CurrentSavings: 6000},
			want:    Summary{MonthlyNetIncome: 5000, MonthlySurplus: 2500, DebtToIncomeRatio: 0.1, EmergencyFundMonths: 3, DebtPayments: 500},
		},
		{
			name:    "debt without income",
			profile: FinancialProfile{DebtPayments: 200},
			want:    Summary{MonthlySurplus: -200, DebtToIncomeRatio: 1, DebtPayments: 200},
		},
		{
			name:    "savings without expenses",
			profile: FinancialProfile{MonthlyIncome: 1000, CurrentSavings: 10},
			want:    Summary{MonthlyNetIncome: 1000, MonthlySurplus: 1000, EmergencyFundMonths: 120},
		},
		{
			name:    "emergency fund is capped",
			profile: FinancialProfile{MonthlyIncome: 1000, MonthlyExpenses: 1, CurrentSavings: 1_000_000},
			want:    Summary{MonthlyNetIncome: 1000, MonthlySurplus: 999, EmergencyFundMonths: 120},
		},
		{
			name:    "empty",
			profile: FinancialProfile{},
			want:    Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.profile.Summarize()
			assert.InDelta(t, tt.want.MonthlyNetIncome, got.MonthlyNetIncome, 1e-9)
			assert.InDelta(t, tt.want.MonthlySurplus, got.MonthlySurplus, 1e-9)
			assert.InDelta(t, tt.want.DebtToIncomeRatio, got.DebtToIncomeRatio, 1e-9)
			assert.InDelta(t, tt.want.EmergencyFundMonths, got.EmergencyFundMonths, 1e-9)
			assert.InDelta(t, tt.want.DebtPayments, got.DebtPayments, 1e-9)
		})
	}
}

func TestRiskToleranceNormalize(t *testing.T) {
	assert.Equal(t, RiskLow, RiskLow.Normalize())
	assert.Equal(t, RiskHigh, RiskHigh.Normalize())
	assert.Equal(t, RiskModerate, RiskTolerance("").Normalize())
	assert.Equal(t, RiskModerate, RiskTolerance("HIGH").Normalize())
}

func TestPurchaseInputClone(t *testing.T) {
	original := PurchaseInput{
		ItemName:    "Laptop",
		Cost:        1200,
		Profile:     &FinancialProfile{MonthlyIncome: 4000, CurrentSavings: 100},
		Alternative: &Alternative{Name: "Refurb", Price: 900},
	}

	clone := original.Clone()
	clone.Profile.CurrentSavings = 5000
	clone.Alternative.Price = 1
	clone.Cost = 1

	assert.Equal(t, 100.0, original.Profile.CurrentSavings)
	assert.Equal(t, 900.0, original.Alternative.Price)
	assert.Equal(t, 1200.0, original.Cost)
	assert.Nil(t, PurchaseInput{}.Clone().Profile)
}

func TestCheaperAlternative(t *testing.T) {
	in := PurchaseInput{Cost: 200, Alternative: &Alternative{Name: "x", Price: 150}}
	pct, ok := in.CheaperAlternative()
	assert.True(t, ok)
	assert.InDelta(t, 25.0, pct, 1e-9)

	in.Alternative.Price = 250
	_, ok = in.CheaperAlternative()
	assert.False(t, ok)

	in.Cost = 0
	_, ok = in.CheaperAlternative()
	assert.False(t, ok)
}

func TestFrequencyValid(t *testing.T) {
	assert.True(t, FrequencyOneTime.Valid())
	assert.True(t, FrequencyUnknown.Valid())
	assert.False(t, Frequency("hourly").Valid())
}
