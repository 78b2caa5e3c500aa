package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var minorPerUnit = decimal.NewFromInt(100)

// ParsePriceMinor parses a decimal currency string (e.g. "50.00") into
// integer minor units. Fractions beyond two places round half away from
// zero. Negative amounts are rejected.
func ParsePriceMinor(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative price %q", s)
	}
	return d.Mul(minorPerUnit).Round(0).IntPart(), nil
}

// FormatMinor renders a non-negative minor-unit amount as a two-decimal
// display string. Conversion back to a decimal representation happens only
// here, at the formatting boundary.
func FormatMinor(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
