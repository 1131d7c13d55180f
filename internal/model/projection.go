// Package model defines domain types for endowment projections.
package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Variant selects which yearly recurrence the engine runs.
type Variant string

const (
	// VariantDepositFirst deposits the contribution before the year's growth
	// is computed, so a new deposit earns income in the year it arrives.
	VariantDepositFirst Variant = "a"
	// VariantSeeded seeds year 1 with the contribution, then grows the prior
	// balance before each later deposit.
	VariantSeeded Variant = "b"
)

// DefaultVariant is used when no variant is configured.
const DefaultVariant = VariantDepositFirst

// ParseVariant accepts "a"/"b" in any case, plus a few long names.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a", "deposit-first":
		return VariantDepositFirst, nil
	case "b", "seeded":
		return VariantSeeded, nil
	}
	return "", fmt.Errorf("unknown variant %q (want a or b)", s)
}

// Label returns a short human description for menus.
func (v Variant) Label() string {
	switch v {
	case VariantDepositFirst:
		return "A: deposit, then grow"
	case VariantSeeded:
		return "B: seed year 1, grow, then deposit"
	}
	return string(v)
}

// Params are the inputs of one projection run.
type Params struct {
	AnnualContribution decimal.Decimal `json:"annual_contribution"`
	PledgePeriod       int             `json:"pledge_period" validate:"gte=0"`
	ROIRate            decimal.Decimal `json:"roi_rate"`
	Horizon            int             `json:"horizon" validate:"gte=1"`
	Variant            Variant         `json:"variant" validate:"oneof=a b"`
}

// YearRecord is the state of the fund at the end of one projected year.
type YearRecord struct {
	Year            int             `json:"year"`
	Contribution    decimal.Decimal `json:"contribution"`
	GeneratedIncome decimal.Decimal `json:"generated_income"`
	DonationImpact  decimal.Decimal `json:"donation_impact"`
	AdminFee        decimal.Decimal `json:"admin_fee"`
	NetChange       decimal.Decimal `json:"net_change"`
	Balance         decimal.Decimal `json:"balance"`
}

// Window is a fixed-size slice of years rendered as one table.
type Window struct {
	Title string       `json:"title"`
	From  int          `json:"from"`
	To    int          `json:"to"`
	Years []YearRecord `json:"years"`
}

// Summary holds totals across a projection.
type Summary struct {
	Years                int             `json:"years"`
	FinalBalance         decimal.Decimal `json:"final_balance"`
	TotalContributed     decimal.Decimal `json:"total_contributed"`
	TotalGeneratedIncome decimal.Decimal `json:"total_generated_income"`
	TotalDisbursed       decimal.Decimal `json:"total_disbursed"`
	TotalAdminFees       decimal.Decimal `json:"total_admin_fees"`
	Growth               decimal.Decimal `json:"growth"`
}
