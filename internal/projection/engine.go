// Package projection computes year-by-year endowment balances.
//
// Project is a pure function: the same Params always produce the same
// records, and nothing outside the returned slice is touched.
package projection

import (
	"fmt"

	"github.com/theirongolddev/endow/internal/model"

	"github.com/shopspring/decimal"
)

// Fixed percentages deducted from the balance's yearly growth.
var (
	DisbursementRate = decimal.NewFromInt(4)
	AdminFeeRate     = decimal.NewFromInt(2)
)

var hundred = decimal.NewFromInt(100)

// Project runs the recurrence selected by p.Variant and returns exactly
// p.Horizon records, ordered by year starting at 1.
func Project(p model.Params) ([]model.YearRecord, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	switch p.Variant {
	case model.VariantSeeded:
		return projectSeeded(p), nil
	default:
		return projectDepositFirst(p), nil
	}
}

// MustProject is Project for inputs already known to be valid.
func MustProject(p model.Params) []model.YearRecord {
	records, err := Project(p)
	if err != nil {
		panic(fmt.Sprintf("projection: %v", err))
	}
	return records
}

type yearlyGrowth struct {
	income       decimal.Decimal
	disbursement decimal.Decimal
	adminFee     decimal.Decimal
	net          decimal.Decimal
}

func growth(balance, roi decimal.Decimal) yearlyGrowth {
	g := yearlyGrowth{
		income:       percentOf(balance, roi),
		disbursement: percentOf(balance, DisbursementRate),
		adminFee:     percentOf(balance, AdminFeeRate),
	}
	g.net = g.income.Sub(g.disbursement.Add(g.adminFee))
	return g
}

func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}

// projectDepositFirst deposits before computing the year's growth.
func projectDepositFirst(p model.Params) []model.YearRecord {
	records := make([]model.YearRecord, 0, p.Horizon)
	balance := decimal.Zero

	for year := 1; year <= p.Horizon; year++ {
		contribution := decimal.Zero
		if year <= p.PledgePeriod {
			contribution = p.AnnualContribution
			balance = balance.Add(contribution)
		}

		g := growth(balance, p.ROIRate)
		balance = balance.Add(g.net)

		records = append(records, model.YearRecord{
			Year:            year,
			Contribution:    contribution,
			GeneratedIncome: g.income,
			DonationImpact:  g.disbursement,
			AdminFee:        g.adminFee,
			NetChange:       g.net,
			Balance:         balance,
		})
	}
	return records
}

// projectSeeded seeds year 1 with the contribution and grows the prior
// balance before each later deposit.
func projectSeeded(p model.Params) []model.YearRecord {
	records := make([]model.YearRecord, 0, p.Horizon)

	// A zero pledge means no deposit at all, including the seed.
	balance := decimal.Zero
	if p.PledgePeriod >= 1 {
		balance = p.AnnualContribution
	}
	records = append(records, model.YearRecord{
		Year:         1,
		Contribution: balance,
		Balance:      balance,
	})

	for year := 2; year <= p.Horizon; year++ {
		g := growth(balance, p.ROIRate)
		balance = balance.Add(g.net)

		contribution := decimal.Zero
		if year <= p.PledgePeriod {
			contribution = p.AnnualContribution
			balance = balance.Add(contribution)
		}

		records = append(records, model.YearRecord{
			Year:            year,
			Contribution:    contribution,
			GeneratedIncome: g.income,
			DonationImpact:  g.disbursement,
			AdminFee:        g.adminFee,
			NetChange:       g.net,
			Balance:         balance,
		})
	}
	return records
}
