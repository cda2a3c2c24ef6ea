package domain

import "time"

// DailySummary is revenue and margin aggregated over one calendar day.
type DailySummary struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Margin  float64   `json:"margin"`
}

// DimensionSummary is revenue and margin aggregated over one categorical
// value (a region or a channel), sorted by revenue descending.
type DimensionSummary struct {
	Value   string  `json:"value"`
	Revenue float64 `json:"revenue"`
	Margin  float64 `json:"margin"`
}

// ProductSummary aggregates one product over the selected period.
type ProductSummary struct {
	ProductID string  `json:"product_id"`
	Revenue   float64 `json:"revenue"`
	Margin    float64 `json:"margin"`
	Quantity  float64 `json:"quantity"`
	Orders    int     `json:"orders"`
}

// ForecastSeries labels a forecast point as observed or projected.
type ForecastSeries string

const (
	SeriesReal     ForecastSeries = "Real"
	SeriesForecast ForecastSeries = "Forecast"
)

// ForecastPoint is one daily revenue value, observed or projected.
type ForecastPoint struct {
	Date    time.Time      `json:"date"`
	Revenue float64        `json:"revenue"`
	Series  ForecastSeries `json:"series"`
}

// ForecastResult holds the full historical daily aggregation followed by the
// projected horizon, plus the fitted line for inspection.
type ForecastResult struct {
	Points    []ForecastPoint `json:"points"`
	Slope     float64         `json:"slope"`
	Intercept float64         `json:"intercept"`
}

// FilterOptions lists the values a client can filter by, derived from the
// loaded dataset.
type FilterOptions struct {
	MinDate  time.Time `json:"min_date"`
	MaxDate  time.Time `json:"max_date"`
	Regions  []string  `json:"regions"`
	Channels []string  `json:"channels"`
	Products []string  `json:"products"`
}

// Dashboard is the full result of one pipeline run for a selection: the two
// period subsets, KPI comparisons, insights, aggregates and the forecast.
type Dashboard struct {
	Selection   Selection `json:"selection"`
	Period      Period    `json:"period"`
	PriorPeriod Period    `json:"prior_period"`

	Current []SalesRecord `json:"current"`
	Prior   []SalesRecord `json:"prior"`

	Revenue         MetricComparison `json:"revenue"`
	Margin          MetricComparison `json:"margin"`
	ActiveCustomers MetricComparison `json:"active_customers"`
	Orders          MetricComparison `json:"orders"`

	Insights []Insight `json:"insights"`

	Daily       []DailySummary     `json:"daily"`
	ByRegion    []DimensionSummary `json:"by_region"`
	ByChannel   []DimensionSummary `json:"by_channel"`
	TopProducts []ProductSummary   `json:"top_products"`

	// Forecast is nil when the current subset is empty.
	Forecast *ForecastResult `json:"forecast,omitempty"`
}
