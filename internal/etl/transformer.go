package etl

import "github.com/andresuchdata/ventas-bi/backend-go/internal/domain"

// Transformer derives the financial metric columns:
//
//	revenue      = quantity * price
//	total_cost   = quantity * cost
//	margin       = revenue - total_cost
//	margin_ratio = margin / revenue, or 0 when revenue <= 0
//
// It is pure: the input slice is left untouched and a new one is returned.
type Transformer struct{}

// Transform returns a new slice with the derived metrics populated.
func (Transformer) Transform(records []domain.SalesRecord) []domain.SalesRecord {
	out := make([]domain.SalesRecord, len(records))
	for i, r := range records {
		r.Revenue = r.Quantity * r.Price
		r.TotalCost = r.Quantity * r.Cost
		r.Margin = r.Revenue - r.TotalCost
		if r.Revenue > 0 {
			r.MarginRatio = r.Margin / r.Revenue
		} else {
			r.MarginRatio = 0
		}
		out[i] = r
	}
	return out
}
