package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/endow/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderWarning renders a one-line warning in the warning color.
func RenderWarning(msg string) string {
	return "  " + warnStyle.Render(msg)
}

// RenderNote renders muted helper text.
func RenderNote(msg string) string {
	return "  " + mutedStyle.Render(msg)
}

func (t Table) columnWidths() []int {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

// rule draws a horizontal border line such as ╭──┬──╮.
func rule(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
	return b.String()
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned, the rest right-aligned. A row holding the single
// cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	widths := t.columnWidths()
	numCols := len(widths)

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			format := " %*s "
			if i == 0 {
				format = " %-*s "
			}
			b.WriteString(valueStyle.Render(fmt.Sprintf(format, widths[i], cell)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

// ProjectionOptions controls which columns the result tables show.
type ProjectionOptions struct {
	Money      Money
	ShowImpact bool // add the yearly disbursement column
}

// WindowTable converts one display window into a table.
func WindowTable(w model.Window, opts ProjectionOptions) Table {
	headers := []string{"Year", "Balance"}
	if opts.ShowImpact {
		headers = append(headers, "Donation Impact")
	}

	rows := make([][]string, 0, len(w.Years))
	for _, r := range w.Years {
		row := []string{fmt.Sprintf("%d", r.Year), opts.Money.Format(r.Balance)}
		if opts.ShowImpact {
			row = append(row, opts.Money.Format(r.DonationImpact))
		}
		rows = append(rows, row)
	}
	return Table{Title: w.Title, Headers: headers, Rows: rows}
}

// RenderProjection renders one table per window, in year order.
func RenderProjection(windows []model.Window, opts ProjectionOptions) string {
	var b strings.Builder
	for i, w := range windows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderTable(WindowTable(w, opts)))
	}
	return b.String()
}

// SummaryTable converts projection totals into a two-column table.
func SummaryTable(s model.Summary, m Money) Table {
	return Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Years Projected", FormatYears(s.Years)},
			{"Total Contributed", m.Format(s.TotalContributed)},
			{"---"},
			{"Generated Income", m.Format(s.TotalGeneratedIncome)},
			{"Disbursed", m.Format(s.TotalDisbursed)},
			{"Admin Fees", m.Format(s.TotalAdminFees)},
			{"---"},
			{"Final Balance", m.Format(s.FinalBalance)},
			{"Growth", m.Format(s.Growth)},
		},
	}
}
