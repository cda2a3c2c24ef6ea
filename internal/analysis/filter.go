// Package analysis slices the cleaned dataset: date/dimension filtering,
// period-over-period comparison and the aggregates the dashboard renders.
package analysis

import (
	"time"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

// Filter applies a selection to a record set without mutating it.
type Filter struct{}

// Apply returns the records matching the selection: date bounds inclusive
// on both ends, plus equality on each dimension that is set. An empty
// result is valid, not an error.
func (Filter) Apply(records []domain.SalesRecord, sel domain.Selection) []domain.SalesRecord {
	start := dateOnly(sel.Start)
	end := dateOnly(sel.End)

	out := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		d := dateOnly(r.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		if sel.Region != "" && r.Region != sel.Region {
			continue
		}
		if sel.Channel != "" && r.Channel != sel.Channel {
			continue
		}
		if sel.ProductID != "" && r.ProductID != sel.ProductID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
