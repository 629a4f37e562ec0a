package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrAmountOutOfRange is returned when an amount does not fit in int64
// minor units or is written with an exponent outside
// [minAmountExponent, maxAmountExponent].
var ErrAmountOutOfRange = errors.New("amount out of range")

// Rescaling a decimal costs time proportional to its exponent, so
// exponents are bounded before any arithmetic.
const (
	minAmountExponent = -10
	maxAmountExponent = 15
)

var (
	hundred       = decimal.NewFromInt(100)
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// ParseAmount parses a submitted dollar amount. Surrounding whitespace is
// ignored and an empty string is zero, matching how browsers submit an
// untouched number input.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	if exp := amount.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, ErrAmountOutOfRange)
	}
	return amount, nil
}

// ToMinorUnits converts a dollar amount into integer cents:
// round(amount * 100), half away from zero.
func ToMinorUnits(raw string) (int64, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return 0, err
	}

	cents := amount.Mul(hundred).Round(0)
	if cents.GreaterThan(maxMinorUnits) || cents.LessThan(minMinorUnits) {
		return 0, ErrAmountOutOfRange
	}
	return cents.IntPart(), nil
}

// FormatMinorUnits renders cents as a dollar string, e.g. 1999 -> "$19.99".
func FormatMinorUnits(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
