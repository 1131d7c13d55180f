// Package cmd implements the endow CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/theirongolddev/endow/internal/cli"
	"github.com/theirongolddev/endow/internal/config"
	"github.com/theirongolddev/endow/internal/model"
	"github.com/theirongolddev/endow/internal/pipeline"
	"github.com/theirongolddev/endow/internal/projection"

	"github.com/spf13/cobra"
)

var (
	flagAmount    float64
	flagPledge    int
	flagROI       float64
	flagHorizon   int
	flagVariant   string
	flagFormat    string
	flagImpact    bool
	flagSummary   bool
	flagLogFormat string
	flagVerbose   bool
)

// logger is configured in PersistentPreRunE from --log-format and --verbose.
var logger = slog.New(slog.DiscardHandler)

var rootCmd = &cobra.Command{
	Use:   "endow",
	Short: "Endowment growth calculator",
	Long: "Project the growth of a charitable endowment fund: yearly contributions over a\n" +
		"pledge period, investment income, donation disbursements and admin fees.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), flagLogFormat, flagVerbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: runProject,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format on stderr: text or json")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	addProjectionFlags(rootCmd)
	addOutputFlags(rootCmd)
}

// addProjectionFlags registers the projection inputs on cmd. Flags that are
// not set explicitly fall back to the config file defaults.
func addProjectionFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64VarP(&flagAmount, "amount", "a", pipeline.DefaultAnnualContribution, "Annual contribution")
	fs.IntVarP(&flagPledge, "pledge", "p", pipeline.DefaultPledgePeriod, "Pledge period in years")
	fs.Float64VarP(&flagROI, "roi", "r", pipeline.DefaultROIRate, "Annual return on investment, percent")
	fs.IntVarP(&flagHorizon, "horizon", "y", pipeline.DefaultHorizon, "Number of years to project")
	fs.StringVar(&flagVariant, "variant", string(model.DefaultVariant), "Recurrence: a (deposit, then grow) or b (seeded)")
}

func addOutputFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&flagFormat, "format", "f", "table", "Output format: table, json or csv")
	fs.BoolVarP(&flagImpact, "impact", "i", false, "Show the donation impact column")
	fs.BoolVarP(&flagSummary, "summary", "s", false, "Print totals after the yearly tables")
}

// newLogger builds the stderr logger. Debug level only with --verbose.
func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
}

// loadConfig reads the config file, warning and falling back to defaults
// when it cannot be read.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using default config", slog.String("path", config.Path()), slog.Any("error", err))
		return config.DefaultConfig()
	}
	return cfg
}

// resolveParams starts from the config defaults and applies every
// projection flag the user set on cmd.
func resolveParams(cmd *cobra.Command, cfg config.Config) (model.Params, error) {
	base, err := cfg.Params()
	if err != nil {
		logger.Warn("ignoring invalid config defaults", slog.Any("error", err))
		base = pipeline.DefaultParams()
	}

	fs := cmd.Flags()
	p := base
	if fs.Changed("amount") {
		d, err := projection.DecimalFromFloat("annual_contribution", flagAmount)
		if err != nil {
			return p, err
		}
		p.AnnualContribution = d
	}
	if fs.Changed("roi") {
		d, err := projection.DecimalFromFloat("roi_rate", flagROI)
		if err != nil {
			return p, err
		}
		p.ROIRate = d
	}
	if fs.Changed("pledge") {
		p.PledgePeriod = flagPledge
	}
	if fs.Changed("horizon") {
		p.Horizon = flagHorizon
	}
	if fs.Changed("variant") {
		v, err := projection.ParseVariant(flagVariant)
		if err != nil {
			return p, err
		}
		p.Variant = v
	}

	if err := projection.Validate(p); err != nil {
		return p, err
	}
	return p, nil
}

// moneyFor returns the amount formatter configured for cfg.
func moneyFor(cfg config.Config) cli.Money {
	return cli.Money{Locale: cfg.General.Locale, Currency: cfg.General.Currency}
}
