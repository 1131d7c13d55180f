package pipeline

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/endow/internal/projection"

	"github.com/shopspring/decimal"
)

// ParseAmount coerces free text such as "$10,000CDN" to a whole amount by
// keeping only its digits. Text with no digits is zero.
func ParseAmount(text string) decimal.Decimal {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseRate coerces free text such as "6.5%" to a rate by keeping digits and
// dots. Empty text is zero; leftovers that are not a number (e.g. "1.2.3")
// are rejected.
func ParseRate(text string) (decimal.Decimal, error) {
	kept := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)
	if kept == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(kept)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: roi_rate %q is not a number", projection.ErrInvalidInput, text)
	}
	return d, nil
}
