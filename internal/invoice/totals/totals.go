// Package totals computes the derived money amounts for an invoice.
package totals

import (
	"math"
	"strconv"
	"strings"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
)

// Compute derives subtotal, discount, tax, and grand total from the
// line items, the raw discount spec, and the tax rate percentage.
//
// This function is PURE:
// - No side effects
// - Fully deterministic: identical inputs yield identical Totals
//
// Malformed numeric input never aborts the computation; a NaN or
// infinite quantity, rate, or tax rate contributes zero instead.
// The discount is deliberately not clamped to the subtotal, so a
// large flat discount produces a negative post-discount subtotal
// that propagates into the tax and grand total.
func Compute(items []domain.LineItem, discountSpec string, taxRatePercent float64) domain.Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += finite(item.Quantity) * finite(item.Rate)
	}

	discount := ParseDiscount(discountSpec, subtotal)
	afterDiscount := subtotal - discount
	tax := afterDiscount * finite(taxRatePercent) / 100

	return domain.Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    afterDiscount + tax,
	}
}

// ParseDiscount turns a user-entered discount spec into a currency
// amount. A bare magnitude ("50") is a flat deduction; a magnitude
// with a percent marker ("10%") is a fraction of the subtotal.
// Parsing never fails: unparsable or missing input yields zero, and
// a non-positive subtotal always yields zero.
func ParseDiscount(spec string, subtotal float64) float64 {
	input := strings.TrimSpace(spec)
	if input == "" || subtotal <= 0 {
		return 0
	}

	magnitude, ok := parseMagnitude(input)
	if !ok {
		return 0
	}
	if strings.Contains(input, "%") {
		return subtotal * magnitude / 100
	}
	return magnitude
}

// parseMagnitude strips everything but digits and '.' and then reads
// the longest numeric prefix, mirroring lenient form-input parsing:
// "$1.5k" reads as 1.5, "1.2.3" as 1.2, "abc" as nothing.
func parseMagnitude(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	stripped := b.String()

	if v, err := strconv.ParseFloat(stripped, 64); err == nil {
		return v, true
	}
	for end := len(stripped) - 1; end > 0; end-- {
		if v, err := strconv.ParseFloat(stripped[:end], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
