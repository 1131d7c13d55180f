package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/endow/internal/cli"
	"github.com/theirongolddev/endow/internal/pipeline"
	"github.com/theirongolddev/endow/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Fill in the calculator inputs interactively, then print the tables",
	RunE:  runForm,
}

func init() {
	addProjectionFlags(formCmd)
	addOutputFlags(formCmd)
	rootCmd.AddCommand(formCmd)
}

func runForm(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	start, err := resolveParams(cmd, cfg)
	if err != nil {
		return err
	}

	vals := tui.InputValuesFrom(start)
	if err := tui.NewInputForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("input form: %w", err)
	}

	p, err := vals.Params()
	if err != nil {
		return err
	}
	res, err := pipeline.Run(p)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), res, flagFormat, cli.ProjectionOptions{
		Money:      moneyFor(cfg),
		ShowImpact: flagImpact,
	}, flagSummary)
}
