// Package money holds the quantity/cost arithmetic behind specification
// line totals. Inputs arrive as free-form strings from entry forms, so
// parsing is deliberately tolerant: anything that is not a usable number
// becomes zero rather than an error.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnits maps supported currency codes to their minor-unit digits.
var minorUnits = map[string]int32{
	"USD": 2,
	"CAD": 2,
	"GBP": 2,
	"EUR": 2,
}

// DefaultCurrency is used when an item carries no currency code.
const DefaultCurrency = "USD"

// SupportedCurrency reports whether code is a currency the rollup understands.
func SupportedCurrency(code string) bool {
	_, ok := minorUnits[code]
	return ok
}

// MinorUnits returns the minor-unit digits for a currency code.
// Unknown codes fall back to 2.
func MinorUnits(code string) int32 {
	if d, ok := minorUnits[code]; ok {
		return d
	}
	return 2
}

// Quantity parses a quantity field. Empty, malformed, or negative input
// coerces to 0 so a bad keystroke never poisons a total.
func Quantity(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	q, err := strconv.ParseInt(s, 10, 64)
	if err != nil || q < 0 {
		return 0
	}
	return q
}

// Cost parses a unit-cost field. Thousands separators and stray currency
// symbols are stripped; empty, malformed, or negative input coerces to 0.
func Cost(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, ",", "")
	// a minus sign anywhere marks a negative amount; check before the
	// noise filter strips it
	if strings.ContainsRune(s, '-') {
		return decimal.Zero
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return decimal.Zero
	}

	c, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return c
}

// ItemTotal computes quantity * unit cost rounded to the currency's
// minor-unit precision.
func ItemTotal(qty int64, cost decimal.Decimal, currency string) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(qty)).Round(MinorUnits(currency))
}

// Sum adds totals that are already rounded; the result needs no further
// rounding because all addends share the same minor-unit precision.
func Sum(totals ...decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum
}
