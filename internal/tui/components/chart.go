package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/endow/internal/cli"
	"github.com/theirongolddev/endow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var (
	sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	barBlocks   = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
)

// Sparkline renders a one-line unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := max(peakOf(values), 1)

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

func peakOf(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	return peak
}

// yAxis holds the tick layout for a chart of the given height.
type yAxis struct {
	step      float64
	ceiling   float64
	intervals int
	rowsPer   int
}

func newYAxis(peak float64, height int) yAxis {
	step := chartTickStep(peak)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(peak/step)) > maxIntervals {
		step *= 2
	}
	ceiling := math.Ceil(peak/step) * step
	intervals := max(int(math.Round(ceiling/step)), 1)
	return yAxis{
		step:      step,
		ceiling:   ceiling,
		intervals: intervals,
		rowsPer:   max(height/intervals, 2),
	}
}

func (a yAxis) rows() int { return a.rowsPer * a.intervals }

// label returns the tick label for a chart row, or "" between ticks.
func (a yAxis) label(row int) string {
	if row%a.rowsPer != 0 {
		return ""
	}
	return cli.FormatCompact(a.step * float64(row/a.rowsPer))
}

// sampleBars thins values (and matching labels) down to n evenly spaced points.
func sampleBars(values []float64, labels []string, n int) ([]float64, []string) {
	src := len(values)
	out := make([]float64, n)
	var outLabels []string
	if len(labels) == src {
		outLabels = make([]string, n)
	}
	for i := range out {
		j := i * (src - 1) / (n - 1)
		out[i] = values[j]
		if outLabels != nil {
			outLabels[i] = labels[j]
		}
	}
	return out, outLabels
}

// BarChart renders a vertical bar chart, one bar per value, with a labeled
// y-axis and optional x-axis labels. Too-small areas fall back to a sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active
	axis := newYAxis(max(peakOf(values), 1), height)

	yLabelW := max(len(cli.FormatCompact(axis.ceiling))+1, 4)
	chartW := max(width-yLabelW-1, 5)

	n := len(values)
	gap, barW := 1, chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else {
		gap = 0
	}
	if barW < 2 && n > 1 {
		n = max((chartW+1)/3, 2)
		values, labels = sampleBars(values, labels, n)
		barW = 2
	}
	barW = min(barW, 6)
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	chartH := axis.rows()

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := axis.ceiling * float64(row) / float64(chartH)
		bottom := axis.ceiling * float64(row-1) / float64(chartH)

		barColor := t.Accent
		switch pct := float64(row) / float64(chartH); {
		case pct > 0.8:
			barColor = t.AccentBright
		case pct > 0.5:
			barColor = color
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, axis.label(row))))
		for i, v := range values {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(barBlocks[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yLabelW+1))
		b.WriteString(axisStyle.Render(xAxisLabels(labels, barW+gap, axisLen)))
	}
	return b.String()
}

// xAxisLabels places labels under their bars, skipping any that would
// overlap the previous one. The last label is always attempted.
func xAxisLabels(labels []string, pitch, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))
	lastEnd := -1
	place := func(i int) {
		lbl := labels[i]
		pos := i * pitch
		if pos+len(lbl) > axisLen {
			pos = axisLen - len(lbl)
		}
		if pos < 0 || pos <= lastEnd {
			return
		}
		copy(buf[pos:], lbl)
		lastEnd = pos + len(lbl)
	}
	for i := 0; i < len(labels)-1; i++ {
		place(i)
	}
	place(len(labels) - 1)
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}
