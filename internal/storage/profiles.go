package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/worth-it/internal/common"
	"github.com/Veraticus/worth-it/internal/model"
	"github.com/Veraticus/worth-it/internal/service"
)

// Profile sources.
const (
	SourceManual = "manual"
	SourceOFX    = "ofx"
)

// SaveProfile creates or replaces a manually entered profile.
func (s *SQLiteStorage) SaveProfile(ctx context.Context, name string, profile model.FinancialProfile) error {
	return s.SaveProfileFrom(ctx, name, SourceManual, profile)
}

// SaveProfileFrom creates or replaces a profile, recording where its figures came from.
func (s *SQLiteStorage) SaveProfileFrom(ctx context.Context, name, source string, profile model.FinancialProfile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProfileName(name); err != nil {
		return err
	}
	if err := validateString(source, "source"); err != nil {
		return err
	}
	if err := ValidateProfile(profile); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (
			name, monthly_income, monthly_expenses, debt_payments, current_savings,
			risk_tolerance, financial_goal, source, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			monthly_income = excluded.monthly_income,
			monthly_expenses = excluded.monthly_expenses,
			debt_payments = excluded.debt_payments,
			current_savings = excluded.current_savings,
			risk_tolerance = excluded.risk_tolerance,
			financial_goal = excluded.financial_goal,
			source = excluded.source,
			updated_at = excluded.updated_at`,
		name,
		profile.MonthlyIncome,
		profile.MonthlyExpenses,
		profile.DebtPayments,
		profile.CurrentSavings,
		string(profile.RiskTolerance.Normalize()),
		string(profile.FinancialGoal),
		source,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %q: %w", name, err)
	}
	return nil
}

// GetProfile loads a profile by name. Missing profiles return common.ErrNotFound.
func (s *SQLiteStorage) GetProfile(ctx context.Context, name string) (*model.FinancialProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateProfileName(name); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT name, monthly_income, monthly_expenses, debt_payments, current_savings,
			risk_tolerance, financial_goal, source, updated_at
		FROM profiles WHERE name = ?`, name)

	named, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %q: %w", name, err)
	}
	return &named.Profile, nil
}

// ListProfiles returns every stored profile ordered by name.
func (s *SQLiteStorage) ListProfiles(ctx context.Context) ([]service.NamedProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, monthly_income, monthly_expenses, debt_payments, current_savings,
			risk_tolerance, financial_goal, source, updated_at
		FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []service.NamedProfile
	for rows.Next() {
		named, scanErr := scanProfile(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", scanErr)
		}
		profiles = append(profiles, named)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a profile. Missing profiles return common.ErrNotFound.
func (s *SQLiteStorage) DeleteProfile(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProfileName(name); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete profile %q: %w", name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %q: %w", name, common.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (service.NamedProfile, error) {
	var (
		named     service.NamedProfile
		tolerance string
		goal      string
	)

	err := row.Scan(
		&named.Name,
		&named.Profile.MonthlyIncome,
		&named.Profile.MonthlyExpenses,
		&named.Profile.DebtPayments,
		&named.Profile.CurrentSavings,
		&tolerance,
		&goal,
		&named.Source,
		&named.UpdatedAt,
	)
	if err != nil {
		return service.NamedProfile{}, err
	}

	named.Profile.RiskTolerance = model.RiskTolerance(tolerance)
	named.Profile.FinancialGoal = model.FinancialGoal(goal)
	return named, nil
}
