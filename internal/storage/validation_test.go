package storage

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/worth-it/internal/common"
	"github.com/Veraticus/worth-it/internal/model"
)

func TestValidateContext(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, validateContext(context.Background()))
	assert.NoError(t, validateContext(canceled), "canceled context is still a context")
	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, validateContext(nil), ErrNilContext)
}

func TestValidateProfileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid", input: "household"},
		{name: "max length", input: strings.Repeat("a", maxProfileNameLength)},
		{name: "whitespace", input: "   ", wantErr: ErrEmptyString},
		{name: "too long", input: strings.Repeat("a", maxProfileNameLength+1), wantErr: common.ErrInvalidProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProfileName(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.FinancialProfile)
		wantErr bool
	}{
		{name: "zero profile", mutate: func(p *model.FinancialProfile) { *p = model.FinancialProfile{} }},
		{name: "valid", mutate: func(*model.FinancialProfile) {}},
		{name: "negative savings", mutate: func(p *model.FinancialProfile) { p.CurrentSavings = -5 }, wantErr: true},
		{name: "NaN expenses", mutate: func(p *model.FinancialProfile) { p.MonthlyExpenses = math.NaN() }, wantErr: true},
		{name: "infinite debt", mutate: func(p *model.FinancialProfile) { p.DebtPayments = math.Inf(1) }, wantErr: true},
		{name: "unknown tolerance", mutate: func(p *model.FinancialProfile) { p.RiskTolerance = "reckless" }, wantErr: true},
		{name: "unknown goal", mutate: func(p *model.FinancialProfile) { p.FinancialGoal = "retire" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			tt.mutate(&p)
			err := ValidateProfile(p)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrInvalidProfile)
		})
	}
}
