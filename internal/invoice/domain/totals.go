package domain

// Totals is the derived subtotal/discount/tax/grand-total tuple.
// It is recomputed from the aggregate on every change and never
// persisted. Invariant: Total = Subtotal - Discount + Tax.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
