// Package utils provides common utility functions for MarketMind.
package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats a number in Indian Rupee format (₹12,34,567.89).
// Uses the Indian numbering system: last 3 digits, then groups of 2.
// Rounding is half-up to two places.
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	negative := d.IsNegative()

	fixed := d.Abs().StringFixed(2)
	intPart, decPart, _ := strings.Cut(fixed, ".")

	formatted := groupIndian(intPart) + "." + decPart
	if negative {
		return "-₹" + formatted
	}
	return "₹" + formatted
}

// FormatCrores converts a raw rupee amount to crores and formats it,
// e.g. 1234500000 → "₹123.45 Cr".
func FormatCrores(amount float64) string {
	return FormatINR(ToCrores(amount)) + " Cr"
}

// ToCrores converts a raw number to crores.
func ToCrores(amount float64) float64 {
	return amount / 1e7
}

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// groupIndian inserts Indian digit grouping into a string of digits.
func groupIndian(s string) string {
	if len(s) <= 3 {
		return s
	}

	result := s[len(s)-3:]
	remaining := s[:len(s)-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	return remaining + "," + result
}
