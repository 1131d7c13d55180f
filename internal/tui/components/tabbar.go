package components

import (
	"strings"

	"github.com/theirongolddev/endow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Calculator", Key: '1'},
	{Name: "Chart", Key: '2'},
}

// Tab bar layout, shared with mouse hit-testing.
const (
	TabBarIndent = 1
	TabGap       = 3
)

// TabVisualWidth is the rendered width of a tab: "[k]" plus its name.
func TabVisualWidth(tab Tab) int {
	return 3 + lipgloss.Width(tab.Name)
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Underline(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimKeyStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		shortcut := dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]")
		if i == activeIdx {
			parts = append(parts, shortcut+activeStyle.Render(tab.Name))
			continue
		}
		parts = append(parts, shortcut+inactiveStyle.Render(tab.Name))
	}

	bar := strings.Repeat(" ", TabBarIndent) + strings.Join(parts, strings.Repeat(" ", TabGap))
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
