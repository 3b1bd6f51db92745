package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/worth-it/internal/model"
)

// ProfilePrompter asks for profile fields one at a time. An empty answer keeps
// the current value.
type ProfilePrompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewProfilePrompter creates a prompter reading from reader and writing to writer.
func NewProfilePrompter(reader io.Reader, writer io.Writer) *ProfilePrompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &ProfilePrompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// PromptProfile walks through every profile field starting from current.
func (p *ProfilePrompter) PromptProfile(ctx context.Context, current model.FinancialProfile) (model.FinancialProfile, error) {
	amounts := []struct {
		field  *float64
		prompt string
	}{
		{&current.MonthlyIncome, "Monthly take-home income"},
		{&current.MonthlyExpenses, "Monthly expenses"},
		{&current.DebtPayments, "Monthly debt payments"},
		{&current.CurrentSavings, "Current savings"},
	}
	for _, a := range amounts {
		v, err := p.promptAmount(ctx, a.prompt, *a.field)
		if err != nil {
			return model.FinancialProfile{}, err
		}
		*a.field = v
	}

	tolerance, err := p.promptChoice(ctx, "Risk tolerance", string(current.RiskTolerance.Normalize()),
		[]string{string(model.RiskLow), string(model.RiskModerate), string(model.RiskHigh)})
	if err != nil {
		return model.FinancialProfile{}, err
	}
	current.RiskTolerance = model.RiskTolerance(tolerance)

	goal, err := p.promptChoice(ctx, "Financial goal", string(current.FinancialGoal),
		[]string{string(model.GoalSave), string(model.GoalDebt), string(model.GoalInvest), string(model.GoalBalance), ""})
	if err != nil {
		return model.FinancialProfile{}, err
	}
	current.FinancialGoal = model.FinancialGoal(goal)

	return current, nil
}

func (p *ProfilePrompter) promptAmount(ctx context.Context, prompt string, current float64) (float64, error) {
	for {
		line, err := p.ask(ctx, fmt.Sprintf("%s [%.2f]", prompt, current))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return current, nil
		}

		v, parseErr := ParseAmount(line)
		if parseErr == nil {
			return v, nil
		}
		p.complain("Enter a non-negative amount.")
	}
}

// ParseAmount reads a non-negative dollar amount, allowing a leading "$" and thousands separators.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid amount %q: must be a non-negative number", s)
	}
	return v, nil
}

func (p *ProfilePrompter) promptChoice(ctx context.Context, prompt, current string, valid []string) (string, error) {
	options := make([]string, 0, len(valid))
	for _, v := range valid {
		if v != "" {
			options = append(options, v)
		}
	}

	for {
		line, err := p.ask(ctx, fmt.Sprintf("%s (%s) [%s]", prompt, strings.Join(options, "/"), current))
		if err != nil {
			return "", err
		}
		if line == "" {
			return current, nil
		}

		choice := strings.ToLower(line)
		for _, v := range valid {
			if choice == v {
				return choice, nil
			}
		}
		p.complain("Invalid choice. Please try again.")
	}
}

func (p *ProfilePrompter) ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if err == io.EOF {
		return "", fmt.Errorf("input terminated")
	}
	return line, err
}

func (p *ProfilePrompter) complain(msg string) {
	if _, err := fmt.Fprintln(p.writer, FormatError(msg)); err != nil {
		slog.Warn("Failed to write error message", "error", err)
	}
}
