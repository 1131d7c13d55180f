package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/theirongolddev/endow/internal/cli"
	"github.com/theirongolddev/endow/internal/pipeline"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"p"},
	Short:   "Print the projection tables (default command)",
	RunE:    runProject,
}

func init() {
	addProjectionFlags(projectCmd)
	addOutputFlags(projectCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	p, err := resolveParams(cmd, cfg)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(p)
	if err != nil {
		return err
	}
	logger.Debug("projection computed",
		slog.String("variant", string(p.Variant)),
		slog.Int("horizon", p.Horizon),
		slog.String("final_balance", res.Summary.FinalBalance.StringFixed(2)),
	)

	return writeResult(cmd.OutOrStdout(), res, flagFormat, cli.ProjectionOptions{
		Money:      moneyFor(cfg),
		ShowImpact: flagImpact,
	}, flagSummary)
}

// writeResult prints res in the requested output format.
func writeResult(w io.Writer, res *pipeline.Result, format string, opts cli.ProjectionOptions, withSummary bool) error {
	switch format {
	case "", "table":
		return writeTables(w, res, opts, withSummary)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "csv":
		return writeCSV(w, res)
	}
	return fmt.Errorf("unknown output format %q (want table, json or csv)", format)
}

func writeTables(w io.Writer, res *pipeline.Result, opts cli.ProjectionOptions, withSummary bool) error {
	p := res.Params

	var b strings.Builder
	b.WriteString(cli.RenderTitle("Endowment Projection"))
	b.WriteString("\n")
	b.WriteString(cli.RenderNote(fmt.Sprintf("%s a year for %s at %s ROI",
		opts.Money.Format(p.AnnualContribution),
		cli.FormatYears(p.PledgePeriod),
		cli.FormatPercent(p.ROIRate),
	)))
	b.WriteString("\n")
	b.WriteString(cli.RenderNote("Variant " + p.Variant.Label()))
	b.WriteString("\n\n")
	b.WriteString(cli.RenderProjection(res.Windows, opts))
	if withSummary {
		b.WriteString("\n")
		b.WriteString(cli.RenderTable(cli.SummaryTable(res.Summary, opts.Money)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

var csvHeader = []string{
	"year", "contribution", "generated_income", "donation_impact", "admin_fee", "net_change", "balance",
}

// writeCSV writes one row per projected year with two-place amounts.
func writeCSV(w io.Writer, res *pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range res.Years {
		row := []string{
			strconv.Itoa(r.Year),
			r.Contribution.StringFixed(2),
			r.GeneratedIncome.StringFixed(2),
			r.DonationImpact.StringFixed(2),
			r.AdminFee.StringFixed(2),
			r.NetChange.StringFixed(2),
			r.Balance.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
