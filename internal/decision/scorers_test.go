package decision

import (
	"testing"

	"github.com/Veraticus/worth-it/internal/model"
	"github.com/stretchr/testify/assert"
)

func profile(income, expenses, debt, savings float64) *model.FinancialProfile {
	return &model.FinancialProfile{
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		DebtPayments:    debt,
		CurrentSavings:  savings,
	}
}

func TestScoreAffordability(t *testing.T) {
	tests := []struct {
		profile *model.FinancialProfile
		name    string
		cost    float64
		want    float64
	}{
		{name: "5 percent", profile: profile(1000, 0, 0, 0), cost: 50, want: 10},
		{name: "10 percent", profile: profile(1000, 0, 0, 0), cost: 100, want: 8},
		{name: "20 percent", profile: profile(1000, 0, 0, 0), cost: 200, want: 6},
		{name: "30 percent", profile: profile(1000, 0, 0, 0), cost: 300, want: 4},
		{name: "50 percent", profile: profile(1000, 0, 0, 0), cost: 500, want: 2},
		{name: "over 50 percent", profile: profile(1000, 0, 0, 0), cost: 501, want: 0},
		{name: "no income", profile: profile(0, 500, 0, 0), cost: 10, want: 0},
		{name: "negative income", profile: profile(-100, 0, 0, 0), cost: 10, want: 0},
		{name: "no profile", profile: nil, cost: 10, want: neutralScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFacts(model.PurchaseInput{Cost: tt.cost, Profile: tt.profile})
			assert.Equal(t, tt.want, scoreAffordability(f))
		})
	}
}

func TestScorersNeutralWithoutInputs(t *testing.T) {
	f := NewFacts(model.PurchaseInput{})
	for id, scorer := range DefaultScorers() {
		assert.Equal(t, neutralScore, scorer(f), "criterion %s", id)
	}
}

func TestScoreAlternatives(t *testing.T) {
	tests := []struct {
		alternative *model.Alternative
		name        string
		wantValue   float64
		wantAvail   float64
	}{
		{name: "no alternative", alternative: nil, wantValue: neutralScore, wantAvail: neutralScore},
		{name: "alternative without price", alternative: &model.Alternative{Name: "x"}, wantValue: neutralScore, wantAvail: neutralScore},
		{name: "pricier alternative", alternative: &model.Alternative{Name: "x", Price: 120}, wantValue: 9, wantAvail: 8},
		{name: "same price", alternative: &model.Alternative{Name: "x", Price: 100}, wantValue: 9, wantAvail: 8},
		{name: "slightly cheaper", alternative: &model.Alternative{Name: "x", Price: 95}, wantValue: 8, wantAvail: 6},
		{name: "15 percent cheaper", alternative: &model.Alternative{Name: "x", Price: 85}, wantValue: 7, wantAvail: 4},
		{name: "30 percent cheaper", alternative: &model.Alternative{Name: "x", Price: 70}, wantValue: 4, wantAvail: 2},
		{name: "80 percent cheaper", alternative: &model.Alternative{Name: "x", Price: 20}, wantValue: 0, wantAvail: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFacts(model.PurchaseInput{Cost: 100, Alternative: tt.alternative})
			assert.InDelta(t, tt.wantValue, clamp(scoreValueForMoney(f)), 1e-9)
			assert.Equal(t, tt.wantAvail, scoreAlternativeAvailability(f))
		})
	}
}

func TestScoreFrequency(t *testing.T) {
	tests := map[model.Frequency]float64{
		model.FrequencyDaily:   10,
		model.FrequencyWeekly:  8,
		model.FrequencyMonthly: 6,
		model.FrequencyRarely:  3,
		model.FrequencyOneTime: 2,
		model.FrequencyUnknown: neutralScore,
	}
	for freq, want := range tests {
		assert.Equal(t, want, scoreFrequency(NewFacts(model.PurchaseInput{Frequency: freq})), "frequency %q", freq)
	}
}

func TestKeywordScorers(t *testing.T) {
	t.Run("necessity", func(t *testing.T) {
		assert.Equal(t, 9.0, scoreNecessity(NewFacts(model.PurchaseInput{ItemName: "Purell disinfecting wipes"})))
		assert.Equal(t, 10.0, scoreNecessity(NewFacts(model.PurchaseInput{ItemName: "Toothpaste", Frequency: model.FrequencyDaily})))
		assert.Equal(t, 3.0, scoreNecessity(NewFacts(model.PurchaseInput{ItemName: "Designer handbag"})))
		assert.Equal(t, neutralScore, scoreNecessity(NewFacts(model.PurchaseInput{ItemName: "Gadget"})))
		assert.Equal(t, neutralScore, scoreNecessity(NewFacts(model.PurchaseInput{})))
	})

	t.Run("longevity", func(t *testing.T) {
		assert.Equal(t, 8.0, scoreLongevity(NewFacts(model.PurchaseInput{ItemName: "MacBook Air M3"})))
		assert.Equal(t, 3.0, scoreLongevity(NewFacts(model.PurchaseInput{ItemName: "Concert tickets"})))
		assert.Equal(t, neutralScore, scoreLongevity(NewFacts(model.PurchaseInput{ItemName: "Gadget"})))
	})

	t.Run("emotional value", func(t *testing.T) {
		assert.Equal(t, 8.0, scoreEmotionalValue(NewFacts(model.PurchaseInput{Purpose: "Birthday gift for my sister"})))
		assert.Equal(t, 3.0, scoreEmotionalValue(NewFacts(model.PurchaseInput{Purpose: "Saw it on sale"})))
		assert.Equal(t, neutralScore, scoreEmotionalValue(NewFacts(model.PurchaseInput{Purpose: "To use"})))
		assert.Equal(t, neutralScore, scoreEmotionalValue(NewFacts(model.PurchaseInput{})))
	})

	t.Run("social factors", func(t *testing.T) {
		assert.Equal(t, 3.0, scoreSocialFactors(NewFacts(model.PurchaseInput{Purpose: "All my friends have one"})))
		assert.Equal(t, 7.0, scoreSocialFactors(NewFacts(model.PurchaseInput{Purpose: "Family game night together"})))
		assert.Equal(t, neutralScore, scoreSocialFactors(NewFacts(model.PurchaseInput{Purpose: "Commuting"})))
	})
}

func TestScoreBuyersRemorse(t *testing.T) {
	tests := []struct {
		profile   *model.FinancialProfile
		name      string
		frequency model.Frequency
		cost      float64
		want      float64
	}{
		{name: "cheap and daily", profile: profile(1000, 0, 0, 0), cost: 10, frequency: model.FrequencyDaily, want: 10},
		{name: "mid and weekly", profile: profile(1000, 0, 0, 0), cost: 150, frequency: model.FrequencyWeekly, want: 7},
		{name: "expensive one-time", profile: profile(1000, 0, 0, 0), cost: 400, frequency: model.FrequencyOneTime, want: 0},
		{name: "rarely used", profile: profile(1000, 0, 0, 0), cost: 300, frequency: model.FrequencyRarely, want: 2},
		{name: "no profile", profile: nil, cost: 300, want: neutralScore},
		{name: "no profile rarely", profile: nil, cost: 300, frequency: model.FrequencyRarely, want: 3},
		{name: "no income", profile: profile(0, 0, 0, 0), cost: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFacts(model.PurchaseInput{Cost: tt.cost, Frequency: tt.frequency, Profile: tt.profile})
			assert.Equal(t, tt.want, clamp(scoreBuyersRemorse(f)))
		})
	}
}

func TestScoreFinancialRiskAndOpportunityCost(t *testing.T) {
	tests := []struct {
		profile         *model.FinancialProfile
		name            string
		wantRisk        float64
		wantOpportunity float64
	}{
		{name: "healthy", profile: profile(5000, 2000, 0, 20000), wantRisk: 10, wantOpportunity: 10},
		{name: "thin cushion", profile: profile(5000, 2000, 0, 4000), wantRisk: 7, wantOpportunity: 7},
		{name: "no cushion", profile: profile(5000, 2000, 0, 0), wantRisk: 5, wantOpportunity: 5},
		{name: "light debt", profile: profile(5000, 2000, 500, 20000), wantRisk: 9, wantOpportunity: 8},
		{name: "moderate debt", profile: profile(5000, 2000, 1500, 20000), wantRisk: 8, wantOpportunity: 7},
		{name: "heavy debt no cushion", profile: profile(5000, 2000, 2500, 1000), wantRisk: 1, wantOpportunity: 2},
		{name: "no profile", profile: nil, wantRisk: neutralScore, wantOpportunity: neutralScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFacts(model.PurchaseInput{Cost: 100, Profile: tt.profile})
			assert.Equal(t, tt.wantRisk, scoreFinancialRisk(f))
			assert.Equal(t, tt.wantOpportunity, scoreOpportunityCost(f))
		})
	}
}

func TestScoreGoalAlignment(t *testing.T) {
	withGoal := func(goal model.FinancialGoal, debt float64) *model.FinancialProfile {
		p := profile(1000, 0, debt, 0)
		p.FinancialGoal = goal
		return p
	}

	tests := []struct {
		profile *model.FinancialProfile
		name    string
		cost    float64
		want    float64
	}{
		{name: "save small", profile: withGoal(model.GoalSave, 0), cost: 100, want: 7},
		{name: "save medium", profile: withGoal(model.GoalSave, 0), cost: 200, want: 5},
		{name: "save large", profile: withGoal(model.GoalSave, 0), cost: 400, want: 2},
		{name: "debt outstanding", profile: withGoal(model.GoalDebt, 100), cost: 10, want: 3},
		{name: "debt cleared", profile: withGoal(model.GoalDebt, 0), cost: 10, want: 7},
		{name: "invest small", profile: withGoal(model.GoalInvest, 0), cost: 50, want: 6},
		{name: "invest large", profile: withGoal(model.GoalInvest, 0), cost: 500, want: 3},
		{name: "balance", profile: withGoal(model.GoalBalance, 0), cost: 150, want: 7},
		{name: "balance large", profile: withGoal(model.GoalBalance, 0), cost: 900, want: 5},
		{name: "no goal", profile: withGoal("", 0), cost: 10, want: neutralScore},
		{name: "no profile", profile: nil, cost: 10, want: neutralScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFacts(model.PurchaseInput{Cost: tt.cost, Profile: tt.profile})
			assert.Equal(t, tt.want, scoreGoalAlignment(f))
		})
	}
}
