package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/worth-it/internal/cli"
)

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(cli.PrimaryColor).Bold(true)
	changedStyle = lipgloss.NewStyle().Foreground(cli.WarningColor)
)

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		cli.TitleStyle.Render(fmt.Sprintf("%s What if? %s", cli.WalletIcon, m.current.ItemName)),
		m.renderFields(),
		m.renderVerdict(),
	}

	if m.report.Flip != nil {
		sections = append(sections, cli.RenderFlip(*m.report.Flip))
	}
	if m.editing {
		sections = append(sections, m.input.View())
	}
	if m.err != nil {
		sections = append(sections, cli.FormatError(m.err.Error()))
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFields() string {
	lines := make([]string, 0, len(fields))
	for i, f := range fields {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("▸ ")
		}

		value := "-"
		if v, ok := f.get(m.current); ok {
			value = fmt.Sprintf("$%.2f", v)
			if orig, origOK := f.get(m.original); !origOK || orig != v {
				value = changedStyle.Render(value)
			}
		}
		lines = append(lines, pointer+cli.Row(f.label, value))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderVerdict() string {
	a := m.report.Analysis
	verdict := cli.VerdictStyle(a.Decision).Render(string(a.Decision))
	line := fmt.Sprintf("%s  %.1f / 100  %s confidence", verdict, a.FinalScore, a.Confidence)

	if a.Decision != m.start {
		line += "  " + cli.SubtleStyle.Render(fmt.Sprintf("(was %s)", m.start))
	}
	return line
}
