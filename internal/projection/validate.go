package projection

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/theirongolddev/endow/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when a parameter cannot be projected.
var ErrInvalidInput = errors.New("invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Input ceilings. Decimals arrive from JSON and text with arbitrary exponents,
// so magnitude and precision are checked before any arithmetic rescales them.
var (
	MaxAnnualContribution = decimal.New(1, 15)
	MaxROIRate            = decimal.NewFromInt(1000)
)

// MaxFractionDigits is the most decimal places an amount or rate may carry.
const MaxFractionDigits = 8

// checkRange rejects |d| > limit or more than MaxFractionDigits places. The
// exponent checks come first so that no comparison expands a huge exponent.
func checkRange(field string, d, limit decimal.Decimal) error {
	if d.Exponent() < -MaxFractionDigits {
		return fmt.Errorf("%w: %s must have at most %d decimal places", ErrInvalidInput, field, MaxFractionDigits)
	}
	if d.NumDigits()+int(d.Exponent()) > len(limit.String()) || d.Abs().GreaterThan(limit) {
		return fmt.Errorf("%w: %s must be at most %s in magnitude", ErrInvalidInput, field, limit.String())
	}
	return nil
}

// Validate reports whether p can be projected. Every failure wraps
// ErrInvalidInput and names the offending field.
func Validate(p model.Params) error {
	if p.AnnualContribution.IsNegative() {
		return fmt.Errorf("%w: annual_contribution must not be negative", ErrInvalidInput)
	}
	if err := checkRange("annual_contribution", p.AnnualContribution, MaxAnnualContribution); err != nil {
		return err
	}
	if err := checkRange("roi_rate", p.ROIRate, MaxROIRate); err != nil {
		return err
	}

	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// DecimalFromFloat converts a coerced float input, rejecting NaN and ±Inf.
func DecimalFromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, field)
	}
	return decimal.NewFromFloat(f), nil
}

// NewParams builds Params from float inputs, as a form or flag layer
// supplies them.
func NewParams(annualContribution float64, pledgePeriod int, roiRate float64, horizon int, variant model.Variant) (model.Params, error) {
	amount, err := DecimalFromFloat("annual_contribution", annualContribution)
	if err != nil {
		return model.Params{}, err
	}
	roi, err := DecimalFromFloat("roi_rate", roiRate)
	if err != nil {
		return model.Params{}, err
	}
	if variant == "" {
		variant = model.DefaultVariant
	}
	return model.Params{
		AnnualContribution: amount,
		PledgePeriod:       pledgePeriod,
		ROIRate:            roi,
		Horizon:            horizon,
		Variant:            variant,
	}, nil
}

// ParseVariant is model.ParseVariant with failures wrapped as ErrInvalidInput.
func ParseVariant(s string) (model.Variant, error) {
	v, err := model.ParseVariant(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return v, nil
}
