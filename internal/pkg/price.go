package pkg

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

var hundred = decimal.NewFromInt(100)

// ParsePrice parses a display price such as "$1,299.50" by dropping every
// character other than digits and dots. Input that leaves no valid number
// behind ("free", "1.2.3") is an error; it never falls back to zero.
func ParsePrice(display string) (decimal.Decimal, error) {
	cleaned := nonPriceChars.ReplaceAllString(display, "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("invalid price %q", display)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", display)
	}
	return d, nil
}

// MinorUnits converts an amount to integer cents, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts integer cents back to a decimal amount.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
