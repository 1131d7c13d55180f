package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/endow/internal/model"

	"github.com/shopspring/decimal"
)

func sampleWindow() model.Window {
	return model.Window{
		Title: "5 Year Growth",
		From:  1,
		To:    2,
		Years: []model.YearRecord{
			{Year: 1, Balance: decimal.NewFromInt(10000), DonationImpact: decimal.Zero},
			{Year: 2, Balance: decimal.NewFromInt(20100), DonationImpact: decimal.NewFromInt(400)},
		},
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q", got)
	}
}

func TestRenderTable_Separator(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"x", "1"}, {"---"}, {"y", "2"}},
	})
	if n := strings.Count(out, "├"); n != 2 {
		t.Errorf("got %d separator rules, want 2 (header + explicit)", n)
	}
	if !strings.HasPrefix(out, "╭") {
		t.Errorf("table should start with a top border, got %q", out[:10])
	}
}

func TestWindowTable_Columns(t *testing.T) {
	plain := WindowTable(sampleWindow(), ProjectionOptions{})
	if len(plain.Headers) != 2 {
		t.Fatalf("headers = %v, want Year and Balance", plain.Headers)
	}
	if plain.Rows[1][1] != "$20,100.00" {
		t.Errorf("year 2 balance = %q", plain.Rows[1][1])
	}

	withImpact := WindowTable(sampleWindow(), ProjectionOptions{ShowImpact: true})
	if len(withImpact.Headers) != 3 || withImpact.Headers[2] != "Donation Impact" {
		t.Fatalf("headers = %v", withImpact.Headers)
	}
	if withImpact.Rows[1][2] != "$400.00" {
		t.Errorf("year 2 impact = %q", withImpact.Rows[1][2])
	}
}

func TestRenderProjection(t *testing.T) {
	second := sampleWindow()
	second.Title = "10 Year Growth"

	out := RenderProjection([]model.Window{sampleWindow(), second}, ProjectionOptions{})
	first := strings.Index(out, "5 Year Growth")
	next := strings.Index(out, "10 Year Growth")
	if first < 0 || next < 0 || next < first {
		t.Fatalf("window titles missing or out of order:\n%s", out)
	}
	if !strings.Contains(out, "$10,000.00") {
		t.Errorf("output missing formatted balance:\n%s", out)
	}
}

func TestSummaryTable(t *testing.T) {
	s := model.Summary{
		Years:        5,
		FinalBalance: decimal.NewFromInt(50000),
	}
	tbl := SummaryTable(s, Money{Currency: "CDN"})
	out := RenderTable(tbl)
	if !strings.Contains(out, "5 Years") || !strings.Contains(out, "$50,000.00 CDN") {
		t.Errorf("summary output:\n%s", out)
	}
}
