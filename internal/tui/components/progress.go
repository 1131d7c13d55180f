package components

import (
	"fmt"

	"github.com/theirongolddev/endow/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

func clampPct(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 1:
		return 1
	}
	return pct
}

// ColorForGrowth picks the bar color for a balance ratio against the peak.
func ColorForGrowth(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 0.8:
		return t.AccentBright
	case pct >= 0.4:
		return t.Accent
	default:
		return t.Green
	}
}

// GrowthBar renders a labeled bar showing value as a share of peak, followed
// by the formatted value.
func GrowthBar(label string, value, peak float64, formatted string, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if peak > 0 {
		pct = clampPct(value / peak)
	}

	bar := progress.New(
		progress.WithSolidFill(string(ColorForGrowth(pct))),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " + bar.ViewAs(pct) + " " + valueStyle.Render(formatted)
}

// ShareBar renders what fraction of the final balance came from deposits, e.g.
// "Deposits ████░░ 80%".
func ShareBar(label string, pct float64, width int) string {
	t := theme.Active
	pct = clampPct(pct)

	barW := max(width-lipgloss.Width(label)-6, 4)
	bar := progress.New(
		progress.WithSolidFill(string(t.Orange)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Green)

	return lipgloss.NewStyle().Foreground(t.TextMuted).Render(label) +
		" " + bar.ViewAs(pct) + " " +
		lipgloss.NewStyle().Foreground(t.Orange).Bold(true).Render(fmt.Sprintf("%3.0f%%", pct*100))
}
