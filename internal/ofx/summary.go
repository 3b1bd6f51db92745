package ofx

import (
	"math"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/worth-it/internal/model"
)

// Summary holds monthly averages derived from one or more statements.
type Summary struct {
	Months          int
	Transactions    int
	MonthlyIncome   float64
	MonthlyExpenses float64
	Savings         float64
	HasSavings      bool
}

// Summarize averages income and expenses over the calendar months that have
// activity. Transfers are skipped, bank credits count as income, debits on any
// account count as expenses and card credits (payments, refunds) are ignored.
// A transaction seen in more than one file is counted once.
func Summarize(statements ...*Statement) Summary {
	var (
		s        Summary
		income   float64
		expenses float64
		seen     = make(map[string]bool)
		months   = make(map[int]bool)
	)

	for _, stmt := range statements {
		if stmt == nil {
			continue
		}
		if stmt.HasBalance {
			s.Savings += stmt.Balance
			s.HasSavings = true
		}

		for _, f := range stmt.Flows {
			if f.Type == ofxgo.TrnTypeXfer.String() {
				continue
			}
			if f.ID != "" {
				key := f.Account + "|" + f.ID
				if seen[key] {
					continue
				}
				seen[key] = true
			}

			switch {
			case f.Amount < 0:
				expenses += -f.Amount
			case f.Amount > 0 && !f.Card:
				income += f.Amount
			default:
				continue
			}
			s.Transactions++
			months[f.Date.Year()*12+int(f.Date.Month())] = true
		}
	}

	s.Months = len(months)
	if s.Months > 0 {
		s.MonthlyIncome = cents(income / float64(s.Months))
		s.MonthlyExpenses = cents(expenses / float64(s.Months))
	}
	if s.Savings < 0 {
		s.Savings = 0
	}
	s.Savings = cents(s.Savings)

	return s
}

// Apply overwrites the profile fields the statements can speak to.
// Debt payments, risk tolerance and goal are left alone.
func (s Summary) Apply(p model.FinancialProfile) model.FinancialProfile {
	if s.Months > 0 {
		p.MonthlyIncome = s.MonthlyIncome
		p.MonthlyExpenses = s.MonthlyExpenses
	}
	if s.HasSavings {
		p.CurrentSavings = s.Savings
	}
	return p
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}
