// Package insights produces the rule-based executive commentary shown on
// the dashboard, comparing the selected period against the prior one.
package insights

import (
	"fmt"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/analysis"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

// Policy thresholds. Changing these changes the tone of the generated
// commentary, so they live here rather than in configuration.
const (
	// lowMarginPct flags a leading product whose margin ratio falls
	// below this percentage.
	lowMarginPct = 15.0
	// concentrationPct flags revenue dependency on a single product.
	concentrationPct = 60.0
)

// Generator evaluates the insight rules. It is stateless; the rules run
// in a fixed order and the output order is part of the contract.
type Generator struct{}

// Generate builds the insight list for the current subset against the
// prior-period subset. filterDesc, when non-empty, is appended to the
// revenue insight so the reader knows which slice it describes.
func (Generator) Generate(current, prior []domain.SalesRecord, filterDesc string) []domain.Insight {
	if len(current) == 0 {
		return []domain.Insight{{
			Title:    "No data",
			Message:  "There are no records for the selected filters. Adjust the date range or the filters.",
			Category: domain.InsightNeutral,
		}}
	}

	out := make([]domain.Insight, 0, 5)
	out = append(out, revenueTrend(current, prior, filterDesc))

	if regions := analysis.SummarizeByRegion(current); len(regions) > 0 {
		out = append(out, leadingRegion(regions))
	}
	if channels := analysis.SummarizeByChannel(current); len(channels) > 0 {
		out = append(out, leadingChannel(channels))
	}

	products := analysis.SummarizeProducts(current, 0)
	if len(products) > 0 {
		out = append(out, leadingProduct(products[0]))
		if risk, ok := concentrationRisk(products); ok {
			out = append(out, risk)
		}
	}

	return out
}

func revenueTrend(current, prior []domain.SalesRecord, filterDesc string) domain.Insight {
	currentRevenue := analysis.TotalRevenue(current)
	priorRevenue := analysis.TotalRevenue(prior)

	if priorRevenue == 0 && currentRevenue > 0 {
		return domain.Insight{
			Title: "No historical reference",
			Message: "The current period has revenue but the prior period has no comparable data. " +
				"This can happen with very specific filters or missing history.",
			Category: domain.InsightNeutral,
		}
	}

	pct := 0.0
	if priorRevenue != 0 {
		pct = (currentRevenue - priorRevenue) / priorRevenue * 100
	}
	category := domain.InsightNeutral
	switch {
	case pct > 0:
		category = domain.InsightPositive
	case pct < 0:
		category = domain.InsightNegative
	}

	msg := fmt.Sprintf("Revenue for the current period is $%.2f (%+.1f%% vs the prior period).", currentRevenue, pct)
	if filterDesc != "" {
		msg += " " + filterDesc
	}
	return domain.Insight{
		Title:    "Performance vs prior period",
		Message:  msg,
		Category: category,
	}
}

func leadingRegion(regions []domain.DimensionSummary) domain.Insight {
	total := 0.0
	for _, r := range regions {
		total += r.Revenue
	}
	top := regions[0]
	share := 0.0
	if total > 0 {
		share = top.Revenue / total * 100
	}
	return domain.Insight{
		Title: "Leading region",
		Message: fmt.Sprintf("The region with the most revenue is %s, contributing %.1f%% of revenue ($%.2f).",
			top.Value, share, top.Revenue),
		Category: domain.InsightPositive,
	}
}

func leadingChannel(channels []domain.DimensionSummary) domain.Insight {
	top := channels[0]
	return domain.Insight{
		Title:    "Strongest channel",
		Message:  fmt.Sprintf("The channel with the highest revenue is %s with $%.2f.", top.Value, top.Revenue),
		Category: domain.InsightNeutral,
	}
}

func leadingProduct(top domain.ProductSummary) domain.Insight {
	marginPct := 0.0
	if top.Revenue > 0 {
		marginPct = top.Margin / top.Revenue * 100
	}
	category := domain.InsightPositive
	if marginPct < lowMarginPct {
		category = domain.InsightNegative
	}
	return domain.Insight{
		Title: "Leading product and profitability",
		Message: fmt.Sprintf("The product with the most revenue is %s ($%.2f). Its estimated margin is %.1f%%.",
			top.ProductID, top.Revenue, marginPct),
		Category: category,
	}
}

func concentrationRisk(products []domain.ProductSummary) (domain.Insight, bool) {
	total := 0.0
	for _, p := range products {
		total += p.Revenue
	}
	share := 0.0
	if total > 0 {
		share = products[0].Revenue / total * 100
	}
	if share < concentrationPct {
		return domain.Insight{}, false
	}
	return domain.Insight{
		Title: "Concentration risk",
		Message: fmt.Sprintf("%.1f%% of revenue comes from a single product (%s). Consider diversifying.",
			share, products[0].ProductID),
		Category: domain.InsightNegative,
	}, true
}
