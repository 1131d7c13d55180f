package pipeline

import (
	"github.com/theirongolddev/endow/internal/model"

	"github.com/shopspring/decimal"
)

// Summarize totals the flows across every projected year.
func Summarize(records []model.YearRecord) model.Summary {
	s := model.Summary{
		Years:                len(records),
		FinalBalance:         decimal.Zero,
		TotalContributed:     decimal.Zero,
		TotalGeneratedIncome: decimal.Zero,
		TotalDisbursed:       decimal.Zero,
		TotalAdminFees:       decimal.Zero,
	}

	for _, r := range records {
		s.TotalContributed = s.TotalContributed.Add(r.Contribution)
		s.TotalGeneratedIncome = s.TotalGeneratedIncome.Add(r.GeneratedIncome)
		s.TotalDisbursed = s.TotalDisbursed.Add(r.DonationImpact)
		s.TotalAdminFees = s.TotalAdminFees.Add(r.AdminFee)
	}
	if len(records) > 0 {
		s.FinalBalance = records[len(records)-1].Balance
	}
	s.Growth = s.FinalBalance.Sub(s.TotalContributed)

	return s
}

// Balances returns each year's balance as a float, oldest first, for charts.
func Balances(records []model.YearRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Balance.InexactFloat64()
	}
	return out
}
