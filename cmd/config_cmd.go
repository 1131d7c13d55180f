package cmd

import (
	"fmt"
	"io"

	"github.com/theirongolddev/endow/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	printConfig(cmd.OutOrStdout(), cfg, config.Path(), config.Exists())
	return nil
}

func printConfig(w io.Writer, cfg config.Config, path string, exists bool) {
	fmt.Fprintf(w, "  Config file: %s\n", path)
	if exists {
		fmt.Fprintln(w, "  Status: loaded")
	} else {
		fmt.Fprintln(w, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [General]")
	fmt.Fprintf(w, "    Variant:  %s\n", cfg.General.Variant)
	fmt.Fprintf(w, "    Locale:   %s\n", cfg.General.Locale)
	if cfg.General.Currency != "" {
		fmt.Fprintf(w, "    Currency: %s\n", cfg.General.Currency)
	}
	fmt.Fprintln(w)

	d := cfg.Defaults
	fmt.Fprintln(w, "  [Defaults]")
	fmt.Fprintf(w, "    Annual contribution: %g\n", d.AnnualContribution)
	fmt.Fprintf(w, "    Pledge period:       %d\n", d.PledgePeriod)
	fmt.Fprintf(w, "    ROI rate:            %g%%\n", d.ROIRate)
	fmt.Fprintf(w, "    Horizon:             %d\n", d.Horizon)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Appearance]")
	fmt.Fprintf(w, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Server]")
	if cfg.Server.Addr != "" {
		fmt.Fprintf(w, "    Address:     %s\n", cfg.Server.Addr)
	} else {
		fmt.Fprintln(w, "    Address:     default")
	}
	if cfg.Server.MaxHorizon > 0 {
		fmt.Fprintf(w, "    Max horizon: %d\n", cfg.Server.MaxHorizon)
	} else {
		fmt.Fprintln(w, "    Max horizon: default")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Run `endow setup` to reconfigure.")
}
