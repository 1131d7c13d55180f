package components

import (
	"strings"

	"github.com/theirongolddev/endow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left, the
// current status message on the right.
func RenderStatusBar(width int, status string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [c]alculate  [tab]view  [q]uit"
	right := ""
	if status != "" {
		color := t.TextDim
		if isErr {
			color = t.Red
		}
		right = lipgloss.NewStyle().Foreground(color).Render(status) + " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
