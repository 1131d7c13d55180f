package tui

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/endow/internal/cli"
	"github.com/theirongolddev/endow/internal/model"
	"github.com/theirongolddev/endow/internal/pipeline"
	"github.com/theirongolddev/endow/internal/projection"

	"github.com/charmbracelet/huh"
)

// InputValues holds the raw answers of the guided input form. Amount and ROI
// stay as typed text and are coerced the same way the calculator fields are.
type InputValues struct {
	Amount  string
	Pledge  int
	ROI     string
	Horizon int
	Variant string
}

// InputValuesFrom pre-fills the form with p.
func InputValuesFrom(p model.Params) InputValues {
	return InputValues{
		Amount:  p.AnnualContribution.StringFixed(0),
		Pledge:  p.PledgePeriod,
		ROI:     p.ROIRate.String(),
		Horizon: p.Horizon,
		Variant: string(p.Variant),
	}
}

// Params coerces the answers into projection inputs.
func (v InputValues) Params() (model.Params, error) {
	roi, err := pipeline.ParseRate(v.ROI)
	if err != nil {
		return model.Params{}, err
	}
	variant, err := projection.ParseVariant(v.Variant)
	if err != nil {
		return model.Params{}, err
	}
	p := model.Params{
		AnnualContribution: pipeline.ParseAmount(v.Amount),
		PledgePeriod:       v.Pledge,
		ROIRate:            roi,
		Horizon:            v.Horizon,
		Variant:            variant,
	}
	if err := projection.Validate(p); err != nil {
		return model.Params{}, err
	}
	return p, nil
}

func intOptions(choices []int, label func(int) string) []huh.Option[int] {
	opts := make([]huh.Option[int], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(label(c), c)
	}
	return opts
}

func validateRate(s string) error {
	_, err := pipeline.ParseRate(s)
	return err
}

// NewInputForm builds the guided form used by `endow form`.
func NewInputForm(vals *InputValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Annual Donation").
				Description("Whole dollars; other characters are ignored.").
				Placeholder(strconv.Itoa(pipeline.DefaultAnnualContribution)).
				Value(&vals.Amount),
			huh.NewSelect[int]().
				Title("Pledge Period").
				Options(intOptions(pipeline.PledgePeriodChoices, cli.FormatYears)...).
				Value(&vals.Pledge),
			huh.NewInput().
				Title("Return on Investment (%)").
				Placeholder(strconv.Itoa(pipeline.DefaultROIRate)).
				Validate(validateRate).
				Value(&vals.ROI),
			huh.NewNote().
				Title("Fixed rates").
				Description(fmt.Sprintf("Disbursement %s · Admin Fee %s",
					cli.FormatPercent(projection.DisbursementRate),
					cli.FormatPercent(projection.AdminFeeRate))),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Display Growth").
				Options(intOptions(pipeline.HorizonChoices, cli.FormatYears)...).
				Value(&vals.Horizon),
			huh.NewSelect[string]().
				Title("Projection method").
				Options(variantOptions()...).
				Value(&vals.Variant),
		),
	).WithShowHelp(true)
}
