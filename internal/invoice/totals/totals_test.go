package totals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
)

func TestParseDiscount(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		subtotal float64
		want     float64
	}{
		{"percent of subtotal", "10%", 200, 20},
		{"flat amount", "50", 200, 50},
		{"empty spec", "", 200, 0},
		{"garbage spec", "abc", 200, 0},
		{"zero subtotal", "10%", 0, 0},
		{"negative subtotal", "10%", -5, 0},
		{"whitespace only", "   ", 200, 0},
		{"currency prefix stripped", "$50", 200, 50},
		{"percent with spaces", " 25 % ", 200, 50},
		{"second dot truncated", "1.2.3", 200, 1.2},
		{"flat exceeds subtotal not clamped", "500", 200, 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ParseDiscount(tc.spec, tc.subtotal), 1e-9)
		})
	}
}

func TestComputeBasics(t *testing.T) {
	items := []domain.LineItem{
		{Description: "Design", Quantity: 10, Rate: 150},
		{Description: "Hosting", Quantity: 2, Rate: 25},
	}

	tot := Compute(items, "10%", 10)

	assert.InDelta(t, 1550.0, tot.Subtotal, 1e-9)
	assert.InDelta(t, 155.0, tot.Discount, 1e-9)
	// Tax applies to the post-discount subtotal.
	assert.InDelta(t, 139.5, tot.Tax, 1e-9)
	assert.InDelta(t, 1534.5, tot.Total, 1e-9)
}

func TestComputeGrandTotalInvariant(t *testing.T) {
	items := []domain.LineItem{{Quantity: 3, Rate: 99.99}}

	for _, spec := range []string{"", "0", "15%", "42", "abc"} {
		tot := Compute(items, spec, 7.5)
		assert.InDelta(t, tot.Subtotal-tot.Discount+tot.Tax, tot.Total, 1e-9, "spec %q", spec)
	}
}

func TestComputeDeterministic(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 4, Rate: 12.5},
		{Quantity: 1, Rate: 0.99},
	}

	first := Compute(items, "5%", 21)
	second := Compute(items, "5%", 21)

	assert.Equal(t, first, second)
}

func TestComputeFlatDiscountCanGoNegative(t *testing.T) {
	items := []domain.LineItem{{Quantity: 1, Rate: 100}}

	tot := Compute(items, "250", 10)

	assert.InDelta(t, 100.0, tot.Subtotal, 1e-9)
	assert.InDelta(t, 250.0, tot.Discount, 1e-9)
	assert.InDelta(t, -15.0, tot.Tax, 1e-9)
	assert.InDelta(t, -165.0, tot.Total, 1e-9)
}

func TestComputeNonFiniteInputs(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: math.NaN(), Rate: 100},
		{Quantity: 2, Rate: math.Inf(1)},
		{Quantity: 2, Rate: 50},
	}

	tot := Compute(items, "", math.NaN())

	assert.InDelta(t, 100.0, tot.Subtotal, 1e-9)
	assert.InDelta(t, 0.0, tot.Tax, 1e-9)
	assert.InDelta(t, 100.0, tot.Total, 1e-9)
}

func TestComputeEmptyItems(t *testing.T) {
	tot := Compute(nil, "10%", 10)
	assert.Equal(t, domain.Totals{}, tot)
}
