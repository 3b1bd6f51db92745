package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/worth-it/internal/engine"
	"github.com/Veraticus/worth-it/internal/model"
)

// Run starts the explorer and returns the report for the figures on screen
// when the user quits.
func Run(ctx context.Context, evaluator Evaluator, in model.PurchaseInput, opts ...tea.ProgramOption) (engine.Report, error) {
	if evaluator == nil {
		return engine.Report{}, fmt.Errorf("evaluator is required")
	}

	m := New(ctx, evaluator, in)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return m.Report(), ctx.Err()
		}
		return engine.Report{}, fmt.Errorf("failed to run explorer: %w", err)
	}

	result, ok := final.(Model)
	if !ok {
		return engine.Report{}, fmt.Errorf("unexpected model type %T", final)
	}
	return result.Report(), nil
}
