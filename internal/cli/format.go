// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale groups digits the way the calculator always has.
const DefaultLocale = "en-CA"

// Money formats decimal amounts for display.
type Money struct {
	Locale   string // BCP 47 tag; DefaultLocale when empty or unparseable
	Currency string // optional label appended to amounts, e.g. "CDN"
}

// Format renders d as "$10,000.00", rounded half away from zero to cents.
func (m Money) Format(d decimal.Decimal) string {
	s := "$" + m.digits(d.Abs())
	if d.Round(2).IsNegative() {
		s = "-" + s
	}
	if m.Currency != "" {
		s += " " + m.Currency
	}
	return s
}

// digits formats a non-negative d with locale grouping. The whole and cent
// parts are printed separately so no digit passes through a float.
func (m Money) digits(d decimal.Decimal) string {
	p := message.NewPrinter(m.tag())
	r := d.Round(2)
	whole := r.Truncate(0)
	cents := r.Sub(whole).Shift(2).IntPart()

	var b strings.Builder
	if w := whole.BigInt(); w.IsInt64() {
		b.WriteString(p.Sprint(number.Decimal(w.Int64())))
	} else {
		b.WriteString(groupDigits(w.String(), groupSeparator(p)))
	}

	// "0.57" in the locale's digits and separator; drop the leading zero.
	frac := []rune(p.Sprint(number.Decimal(float64(cents)/100,
		number.MinFractionDigits(2), number.MaxFractionDigits(2))))
	b.WriteString(string(frac[1:]))
	return b.String()
}

func groupSeparator(p *message.Printer) string {
	r := []rune(p.Sprint(number.Decimal(1000)))
	if len(r) <= 4 {
		return ""
	}
	return string(r[1 : len(r)-3])
}

// groupDigits inserts sep every three digits from the right.
func groupDigits(s, sep string) string {
	if len(s) <= 3 || sep == "" {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func (m Money) tag() language.Tag {
	if m.Locale == "" {
		return language.MustParse(DefaultLocale)
	}
	tag, err := language.Parse(m.Locale)
	if err != nil {
		return language.MustParse(DefaultLocale)
	}
	return tag
}

// FormatMoney formats d with the default locale and no currency label.
func FormatMoney(d decimal.Decimal) string {
	return Money{}.Format(d)
}

// FormatPercent formats a percentage value: 6 -> "6%", 6.5 -> "6.5%".
func FormatPercent(d decimal.Decimal) string {
	return d.String() + "%"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatYears renders a year count: 1 -> "1 Year", 5 -> "5 Years".
func FormatYears(n int) string {
	if n == 1 {
		return "1 Year"
	}
	return strconv.Itoa(n) + " Years"
}

// FormatCompact abbreviates large amounts for chart axes: 25000 -> "25k".
func FormatCompact(v float64) string {
	switch {
	case v >= 1e6:
		return strconv.FormatFloat(math.Round(v/1e5)/10, 'f', -1, 64) + "M"
	case v >= 1e3:
		return strconv.FormatFloat(math.Round(v/100)/10, 'f', -1, 64) + "k"
	default:
		return strconv.FormatInt(int64(v), 10)
	}
}
