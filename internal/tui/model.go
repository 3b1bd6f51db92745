// Package tui is an interactive what-if view: adjust the cost or profile
// figures of a purchase and watch the verdict and flip suggestions change.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/worth-it/internal/cli"
	"github.com/Veraticus/worth-it/internal/engine"
	"github.com/Veraticus/worth-it/internal/model"
)

// Evaluator scores a purchase.
type Evaluator interface {
	Evaluate(ctx context.Context, in model.PurchaseInput) engine.Report
}

// field is one adjustable amount.
type field struct {
	ref     func(*model.PurchaseInput) *float64
	label   string
	step    float64
	profile bool
}

var fields = []field{
	{label: "Cost", step: 25, ref: func(in *model.PurchaseInput) *float64 { return &in.Cost }},
	{label: "Monthly income", step: 100, profile: true, ref: func(in *model.PurchaseInput) *float64 { return &in.Profile.MonthlyIncome }},
	{label: "Monthly expenses", step: 100, profile: true, ref: func(in *model.PurchaseInput) *float64 { return &in.Profile.MonthlyExpenses }},
	{label: "Debt payments", step: 50, profile: true, ref: func(in *model.PurchaseInput) *float64 { return &in.Profile.DebtPayments }},
	{label: "Current savings", step: 500, profile: true, ref: func(in *model.PurchaseInput) *float64 { return &in.Profile.CurrentSavings }},
}

// get reports the field's value; profile fields are unset while no profile is attached.
func (f field) get(in model.PurchaseInput) (float64, bool) {
	if f.profile && in.Profile == nil {
		return 0, false
	}
	return *f.ref(&in), true
}

// set stores v, clamped at zero, attaching an empty profile if needed.
func (f field) set(in *model.PurchaseInput, v float64) {
	if f.profile && in.Profile == nil {
		in.Profile = &model.FinancialProfile{}
	}
	*f.ref(in) = max(v, 0)
}

// Model holds the explorer state.
type Model struct {
	ctx       context.Context
	evaluator Evaluator
	err       error
	original  model.PurchaseInput
	current   model.PurchaseInput
	report    engine.Report
	start     model.Decision
	input     textinput.Model
	help      help.Model
	keymap    KeyMap
	cursor    int
	width     int
	editing   bool
	quitting  bool
}

// New evaluates in and returns a model ready to run.
func New(ctx context.Context, evaluator Evaluator, in model.PurchaseInput) Model {
	input := textinput.New()
	input.Placeholder = "amount"
	input.CharLimit = 16
	input.Prompt = cli.PromptStyle.Render("› ")

	m := Model{
		ctx:       ctx,
		evaluator: evaluator,
		original:  in.Clone(),
		current:   in.Clone(),
		input:     input,
		help:      help.New(),
		keymap:    DefaultKeyMap(),
	}
	m.evaluate()
	m.start = m.report.Analysis.Decision
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(fields)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Increase):
		m.nudge(1)

	case key.Matches(msg, m.keymap.Decrease):
		m.nudge(-1)

	case key.Matches(msg, m.keymap.Edit):
		m.editing = true
		m.err = nil
		m.input.SetValue("")
		if v, ok := fields[m.cursor].get(m.current); ok {
			m.input.Placeholder = fmt.Sprintf("%.2f", v)
		}
		return m, m.input.Focus()

	case key.Matches(msg, m.keymap.Reset):
		m.current = m.original.Clone()
		m.err = nil
		m.evaluate()

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		v, err := cli.ParseAmount(m.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.editing = false
		m.err = nil
		m.input.Blur()
		fields[m.cursor].set(&m.current, v)
		m.evaluate()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) nudge(direction float64) {
	f := fields[m.cursor]
	v, _ := f.get(m.current)
	f.set(&m.current, v+direction*f.step)
	m.evaluate()
}

func (m *Model) evaluate() {
	m.report = m.evaluator.Evaluate(m.ctx, m.current.Clone())
}

// Report returns the evaluation of the current figures.
func (m Model) Report() engine.Report {
	return m.report
}

// Changed reports whether any figure differs from the starting purchase.
func (m Model) Changed() bool {
	for _, f := range fields {
		a, aok := f.get(m.original)
		b, bok := f.get(m.current)
		if a != b || aok != bok {
			return true
		}
	}
	return false
}
