package cmd

import (
	"fmt"

	"github.com/theirongolddev/endow/internal/config"
	"github.com/theirongolddev/endow/internal/tui"
	"github.com/theirongolddev/endow/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive calculator",
	RunE:  runTUI,
}

func init() {
	addProjectionFlags(tuiCmd)
	tuiCmd.Flags().BoolVarP(&flagImpact, "impact", "i", false, "Show the donation impact column")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	p, err := resolveParams(cmd, cfg)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Params:     p,
		Money:      moneyFor(cfg),
		ShowImpact: flagImpact,
		NeedSetup:  !config.Exists(),
	})
	prog := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
