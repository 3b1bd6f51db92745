package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/worth-it/internal/decision"
	"github.com/Veraticus/worth-it/internal/engine"
	"github.com/Veraticus/worth-it/internal/flip"
	"github.com/Veraticus/worth-it/internal/llm"
	"github.com/Veraticus/worth-it/internal/metrics"
	"github.com/Veraticus/worth-it/internal/model"
)

// VerdictStyle picks the color for a decision.
func VerdictStyle(d model.Decision) lipgloss.Style {
	if d == model.DecisionBuy {
		return SuccessStyle.Bold(true)
	}
	return ErrorStyle.Bold(true)
}

// RenderReport renders the decision card for one evaluated purchase.
func RenderReport(r engine.Report) string {
	a := r.Analysis

	verdictIcon := SuccessIcon
	if a.Decision != model.DecisionBuy {
		verdictIcon = ErrorIcon
	}

	lines := []string{
		Row("Verdict", VerdictStyle(a.Decision).Render(verdictIcon+" "+string(a.Decision))),
		Row("Score", fmt.Sprintf("%.1f / 100", a.FinalScore)),
		Row("Confidence", confidenceStyle(a.Confidence).Render(string(a.Confidence))),
		Row("Cost", fmt.Sprintf("$%.2f", r.Input.Cost)),
	}
	if r.Classification != nil {
		category := string(r.Classification.Category)
		if r.Classification.Cached {
			category += SubtleStyle.Render(" (cached)")
		}
		lines = append(lines, Row("Spend category", category))
	}
	if r.Summary != nil {
		lines = append(lines,
			Row("Monthly surplus", fmt.Sprintf("$%.0f", r.Summary.MonthlySurplus)),
			Row("Emergency fund", fmt.Sprintf("%.1f months", r.Summary.EmergencyFundMonths)),
		)
	}

	sections := []string{strings.Join(lines, "\n"), r.Explanation}

	if factors := renderFactors(r.Factors); factors != "" {
		sections = append(sections, factors)
	}
	if len(r.Reasons) > 0 {
		sections = append(sections, renderReasons(r.Reasons))
	}
	if r.Flip != nil {
		sections = append(sections, RenderFlip(*r.Flip))
	}

	title := r.Input.ItemName
	if title == "" {
		title = "Purchase"
	}
	return RenderBox(WalletIcon+" "+title, strings.Join(sections, "\n\n"))
}

func confidenceStyle(c model.Confidence) lipgloss.Style {
	switch c {
	case model.ConfidenceHigh:
		return BoldStyle
	case model.ConfidenceMedium:
		return InfoStyle
	default:
		return WarningStyle
	}
}

func renderFactors(f decision.Factors) string {
	var b strings.Builder
	if len(f.Positive) > 0 {
		b.WriteString(BoldStyle.Render("In favour"))
		for _, c := range f.Positive {
			fmt.Fprintf(&b, "\n  %s %-26s %4.1f", SuccessStyle.Render("+"), c.Name, c.Score)
		}
	}
	if len(f.Negative) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(BoldStyle.Render("Against"))
		for _, c := range f.Negative {
			fmt.Fprintf(&b, "\n  %s %-26s %4.1f", ErrorStyle.Render("-"), c.Name, c.Score)
		}
	}
	return b.String()
}

func renderReasons(reasons []model.Reason) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render("Why not"))
	for _, r := range reasons {
		fmt.Fprintf(&b, "\n  • %s", r.Message)
	}
	return b.String()
}

// RenderFlip describes what would turn the verdict into Buy.
func RenderFlip(result flip.Result) string {
	if !result.Found() {
		return SubtleStyle.Render("No single change turns this into a Buy.")
	}

	var b strings.Builder
	b.WriteString(BoldStyle.Render(FlipIcon + " What would change the answer"))
	if result.PathA != nil {
		fmt.Fprintf(&b, "\n  A. %s", describeSuggestion(*result.PathA))
	}
	if result.PathB != nil && (result.PathA == nil || result.PathA.Lever != result.PathB.Lever) {
		fmt.Fprintf(&b, "\n  B. %s", describeSuggestion(*result.PathB))
	}
	return b.String()
}

func describeSuggestion(s model.FlipSuggestion) string {
	msg := s.Message
	if s.TimelineMonths != nil {
		msg += SubtleStyle.Render(fmt.Sprintf(" (about %d months of surplus)", *s.TimelineMonths))
	}
	return msg
}

// RenderProfile renders a stored financial profile with its derived figures.
func RenderProfile(name string, p model.FinancialProfile) string {
	s := p.Summarize()
	goal := string(p.FinancialGoal)
	if goal == "" {
		goal = "-"
	}

	lines := []string{
		Row("Monthly income", fmt.Sprintf("$%.2f", p.MonthlyIncome)),
		Row("Monthly expenses", fmt.Sprintf("$%.2f", p.MonthlyExpenses)),
		Row("Debt payments", fmt.Sprintf("$%.2f", p.DebtPayments)),
		Row("Current savings", fmt.Sprintf("$%.2f", p.CurrentSavings)),
		Row("Risk tolerance", string(p.RiskTolerance.Normalize())),
		Row("Financial goal", goal),
		"",
		Row("Monthly surplus", fmt.Sprintf("$%.2f", s.MonthlySurplus)),
		Row("Debt-to-income", fmt.Sprintf("%.0f%%", s.DebtToIncomeRatio*100)),
		Row("Emergency fund", fmt.Sprintf("%.1f months", s.EmergencyFundMonths)),
	}
	return RenderBox(ChartIcon+" "+name, strings.Join(lines, "\n"))
}

// RenderClassification renders one spend classification.
func RenderClassification(item string, cost float64, r model.ClassificationResult) string {
	source := "categorizer"
	if r.Cached {
		source = "cache"
	}
	return fmt.Sprintf("%s ($%.2f) → %s %s",
		item, cost, BoldStyle.Render(string(r.Category)), SubtleStyle.Render("from "+source))
}

// RenderBatchSummary renders batch totals.
func RenderBatchSummary(s engine.BatchSummary) string {
	lines := []string{
		Row("Purchases", fmt.Sprintf("%d", s.Total)),
		Row("Buy", SuccessStyle.Render(fmt.Sprintf("%d", s.Buy))),
		Row("Don't Buy", ErrorStyle.Render(fmt.Sprintf("%d", s.DontBuy))),
		Row("Flippable", fmt.Sprintf("%d", s.Flippable)),
		Row("Processing time", s.ProcessingTime.Round(time.Millisecond).String()),
	}
	for _, c := range []model.SpendCategory{
		model.SpendEssentialDaily,
		model.SpendDiscretionarySmall,
		model.SpendDiscretionaryMedium,
		model.SpendHighValue,
	} {
		if n := s.Categories[c]; n > 0 {
			lines = append(lines, Row(string(c), fmt.Sprintf("%d", n)))
		}
	}
	return RenderBox(ChartIcon+" Batch summary", strings.Join(lines, "\n"))
}

// RenderCacheStats renders classification cache statistics.
func RenderCacheStats(s llm.CacheStats) string {
	lines := []string{
		Row("Entries", fmt.Sprintf("%d / %d", s.Size, s.Capacity)),
		Row("Hits", fmt.Sprintf("%d", s.Hits)),
		Row("Misses", fmt.Sprintf("%d", s.Misses)),
		Row("Evictions", fmt.Sprintf("%d", s.Evictions)),
		Row("Expired", fmt.Sprintf("%d", s.Expired)),
	}
	return RenderBox("Classification cache", strings.Join(lines, "\n"))
}

// RenderMetrics renders a metrics snapshot as aligned lines.
func RenderMetrics(samples []metrics.Sample) string {
	if len(samples) == 0 {
		return SubtleStyle.Render("No metrics recorded.")
	}
	lines := make([]string, 0, len(samples))
	for _, s := range samples {
		name := s.Name
		if s.Labels != "" {
			name += "{" + s.Labels + "}"
		}
		lines = append(lines, fmt.Sprintf("%-70s %g", name, s.Value))
	}
	return strings.Join(lines, "\n")
}
