package pipeline

import (
	"github.com/theirongolddev/endow/internal/model"

	"github.com/shopspring/decimal"
)

// State is the calculator's form state plus its last computed result.
// It belongs to whichever front end drives it; every setter recomputes
// synchronously so Result always matches the current inputs.
type State struct {
	annual  decimal.Decimal
	pledge  int
	roi     decimal.Decimal
	horizon int
	variant model.Variant

	result      *Result
	err         error
	showResults bool
}

// NewState returns a State holding the given starting inputs, already
// computed.
func NewState(p model.Params) *State {
	s := &State{
		annual:  p.AnnualContribution,
		pledge:  p.PledgePeriod,
		roi:     p.ROIRate,
		horizon: p.Horizon,
		variant: p.Variant,
	}
	if s.variant == "" {
		s.variant = model.DefaultVariant
	}
	s.recompute()
	return s
}

// DefaultParams are the calculator's initial inputs.
func DefaultParams() model.Params {
	return model.Params{
		AnnualContribution: decimal.NewFromInt(DefaultAnnualContribution),
		PledgePeriod:       DefaultPledgePeriod,
		ROIRate:            decimal.NewFromInt(DefaultROIRate),
		Horizon:            DefaultHorizon,
		Variant:            model.DefaultVariant,
	}
}

// Params returns the current inputs.
func (s *State) Params() model.Params {
	return model.Params{
		AnnualContribution: s.annual,
		PledgePeriod:       s.pledge,
		ROIRate:            s.roi,
		Horizon:            s.horizon,
		Variant:            s.variant,
	}
}

// Result is the projection for the current inputs, nil when they are invalid.
func (s *State) Result() *Result { return s.result }

// Err is the validation error for the current inputs, if any.
func (s *State) Err() error { return s.err }

// ShowResults reports whether Calculate has been requested.
func (s *State) ShowResults() bool { return s.showResults }

// Calculate reveals the result tables. Results are already current.
func (s *State) Calculate() { s.showResults = true }

// SetAnnualContribution replaces the yearly donation amount.
func (s *State) SetAnnualContribution(d decimal.Decimal) {
	s.annual = d
	s.recompute()
}

// SetAnnualContributionText coerces text the way the amount field does.
func (s *State) SetAnnualContributionText(text string) {
	s.SetAnnualContribution(ParseAmount(text))
}

// StepAnnualContribution moves the amount by dir steps of AmountStep,
// never below zero.
func (s *State) StepAnnualContribution(dir int) {
	next := s.annual.Add(decimal.NewFromInt(int64(dir) * AmountStep))
	if next.IsNegative() {
		next = decimal.Zero
	}
	s.SetAnnualContribution(next)
}

// SetPledgePeriod replaces the number of contributing years.
func (s *State) SetPledgePeriod(years int) {
	s.pledge = years
	s.recompute()
}

// SetROI replaces the return rate percentage.
func (s *State) SetROI(d decimal.Decimal) {
	s.roi = d
	s.recompute()
}

// SetROIText coerces text the way the ROI field does. On a coercion error
// the previous rate is kept and the error is reported through Err.
func (s *State) SetROIText(text string) {
	d, err := ParseRate(text)
	if err != nil {
		s.err = err
		s.result = nil
		return
	}
	s.SetROI(d)
}

// StepROI moves the rate by dir steps of ROIStep.
func (s *State) StepROI(dir int) {
	s.SetROI(s.roi.Add(decimal.NewFromInt(int64(dir) * ROIStep)))
}

// SetHorizon replaces the number of projected years.
func (s *State) SetHorizon(years int) {
	s.horizon = years
	s.recompute()
}

// SetVariant selects the recurrence.
func (s *State) SetVariant(v model.Variant) {
	s.variant = v
	s.recompute()
}

func (s *State) recompute() {
	res, err := Run(s.Params())
	s.result, s.err = res, err
}
