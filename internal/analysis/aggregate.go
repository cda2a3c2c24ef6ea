package analysis

import (
	"sort"
	"time"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

// SummarizeDaily aggregates revenue and margin per calendar day, sorted
// ascending by date.
func SummarizeDaily(records []domain.SalesRecord) []domain.DailySummary {
	byDay := make(map[time.Time]*domain.DailySummary)
	for _, r := range records {
		d := dateOnly(r.Date)
		s, ok := byDay[d]
		if !ok {
			s = &domain.DailySummary{Date: d}
			byDay[d] = s
		}
		s.Revenue += r.Revenue
		s.Margin += r.Margin
	}

	out := make([]domain.DailySummary, 0, len(byDay))
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// SummarizeByRegion aggregates revenue and margin per region, sorted by
// revenue descending.
func SummarizeByRegion(records []domain.SalesRecord) []domain.DimensionSummary {
	return summarizeByDimension(records, func(r domain.SalesRecord) string { return r.Region })
}

// SummarizeByChannel aggregates revenue and margin per channel, sorted by
// revenue descending.
func SummarizeByChannel(records []domain.SalesRecord) []domain.DimensionSummary {
	return summarizeByDimension(records, func(r domain.SalesRecord) string { return r.Channel })
}

func summarizeByDimension(records []domain.SalesRecord, key func(domain.SalesRecord) string) []domain.DimensionSummary {
	byValue := make(map[string]*domain.DimensionSummary)
	order := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		s, ok := byValue[k]
		if !ok {
			s = &domain.DimensionSummary{Value: k}
			byValue[k] = s
			order = append(order, k)
		}
		s.Revenue += r.Revenue
		s.Margin += r.Margin
	}

	out := make([]domain.DimensionSummary, 0, len(order))
	for _, k := range order {
		out = append(out, *byValue[k])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// SummarizeProducts aggregates every product over the records, sorted by
// revenue descending. A non-positive limit keeps all products.
func SummarizeProducts(records []domain.SalesRecord, limit int) []domain.ProductSummary {
	type acc struct {
		summary domain.ProductSummary
		orders  map[string]struct{}
	}
	byProduct := make(map[string]*acc)
	order := make([]string, 0)
	for _, r := range records {
		a, ok := byProduct[r.ProductID]
		if !ok {
			a = &acc{
				summary: domain.ProductSummary{ProductID: r.ProductID},
				orders:  make(map[string]struct{}),
			}
			byProduct[r.ProductID] = a
			order = append(order, r.ProductID)
		}
		a.summary.Revenue += r.Revenue
		a.summary.Margin += r.Margin
		a.summary.Quantity += r.Quantity
		a.orders[r.OrderID] = struct{}{}
	}

	out := make([]domain.ProductSummary, 0, len(order))
	for _, k := range order {
		a := byProduct[k]
		a.summary.Orders = len(a.orders)
		out = append(out, a.summary)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TotalRevenue sums the revenue column.
func TotalRevenue(records []domain.SalesRecord) float64 {
	total := 0.0
	for _, r := range records {
		total += r.Revenue
	}
	return total
}

// TotalMargin sums the margin column.
func TotalMargin(records []domain.SalesRecord) float64 {
	total := 0.0
	for _, r := range records {
		total += r.Margin
	}
	return total
}

// DistinctCustomers counts unique customer IDs.
func DistinctCustomers(records []domain.SalesRecord) int {
	return distinct(records, func(r domain.SalesRecord) string { return r.CustomerID })
}

// DistinctOrders counts unique order IDs.
func DistinctOrders(records []domain.SalesRecord) int {
	return distinct(records, func(r domain.SalesRecord) string { return r.OrderID })
}

func distinct(records []domain.SalesRecord, key func(domain.SalesRecord) string) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[key(r)] = struct{}{}
	}
	return len(seen)
}

// Options derives the filterable values and the covered date range from
// the full dataset.
func Options(records []domain.SalesRecord) domain.FilterOptions {
	opts := domain.FilterOptions{}
	regions := make(map[string]struct{})
	channels := make(map[string]struct{})
	products := make(map[string]struct{})
	for i, r := range records {
		d := dateOnly(r.Date)
		if i == 0 || d.Before(opts.MinDate) {
			opts.MinDate = d
		}
		if i == 0 || d.After(opts.MaxDate) {
			opts.MaxDate = d
		}
		if r.Region != "" {
			regions[r.Region] = struct{}{}
		}
		if r.Channel != "" {
			channels[r.Channel] = struct{}{}
		}
		if r.ProductID != "" {
			products[r.ProductID] = struct{}{}
		}
	}
	opts.Regions = sortedKeys(regions)
	opts.Channels = sortedKeys(channels)
	opts.Products = sortedKeys(products)
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
