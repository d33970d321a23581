// Package core provides money parsing and handling utilities.
//
// Amounts are kept as decimal magnitudes; the transaction type carries
// whether a value adds to income or to expense.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to a non-negative amount.
//
// Only a dot is accepted as decimal separator; "1,000" is rejected rather than
// guessed at. Empty input returns ErrMissingAmount, anything that is not a
// number or does not fit a float64 returns ErrInvalidAmount and values below
// zero return ErrNegativeAmount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("50")    -> 50, nil
//	ParseAmount("12,34") -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrMissingAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !Representable(d) {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// Representable reports whether d survives storage as a REAL column, i.e.
// converts to a finite float64.
func Representable(d decimal.Decimal) bool {
	return !math.IsInf(d.InexactFloat64(), 0)
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
