// Package money holds the fixed-point helpers used for every amount in the service.
// Amounts are shopspring decimals rounded to two places.
package money

import "github.com/shopspring/decimal"

const Places = 2

// Round rounds half away from zero to two decimal places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// IsPositive reports whether d is strictly greater than zero after rounding.
func IsPositive(d decimal.Decimal) bool {
	return Round(d).IsPositive()
}

// Sum adds amounts; an empty input sums to zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Format renders d with exactly two decimals, e.g. "50.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}
