// Package pipeline turns raw calculator inputs into projection results:
// coercion, projection, display windows and totals.
package pipeline

import (
	"github.com/theirongolddev/endow/internal/model"
	"github.com/theirongolddev/endow/internal/projection"
)

// WindowSize is the number of years shown per result table.
const WindowSize = 5

// Result is everything a front end needs to render one projection.
type Result struct {
	Params  model.Params       `json:"params"`
	Years   []model.YearRecord `json:"years"`
	Windows []model.Window     `json:"windows"`
	Summary model.Summary      `json:"summary"`
}

// Run projects p and derives its display windows and summary.
func Run(p model.Params) (*Result, error) {
	years, err := projection.Project(p)
	if err != nil {
		return nil, err
	}
	return &Result{
		Params:  p,
		Years:   years,
		Windows: Windows(years, WindowSize),
		Summary: Summarize(years),
	}, nil
}

// Choices offered by the calculator form.
var (
	PledgePeriodChoices = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	HorizonChoices      = []int{5, 10, 15, 20, 25}
)

// Form defaults, matching the calculator's initial state.
const (
	DefaultAnnualContribution = 10000
	DefaultPledgePeriod       = 5
	DefaultROIRate            = 6
	DefaultHorizon            = 5

	// AmountStep and ROIStep are the -/+ button increments.
	AmountStep = 5000
	ROIStep    = 1
)
