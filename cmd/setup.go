package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/endow/internal/config"
	"github.com/theirongolddev/endow/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg, err := tui.RunSetup()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.Path())
	fmt.Fprintf(out, "  Theme %s, locale %s, variant %s\n",
		cfg.Appearance.Theme, cfg.General.Locale, cfg.General.Variant)
	fmt.Fprintln(out, "  Run `endow setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}
