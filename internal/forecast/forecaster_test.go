package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

func dailyRecords(start time.Time, revenues ...float64) []domain.SalesRecord {
	out := make([]domain.SalesRecord, 0, len(revenues))
	for i, rev := range revenues {
		out = append(out, domain.SalesRecord{
			Date:    start.AddDate(0, 0, i),
			Revenue: rev,
		})
	}
	return out
}

func TestForecastEmptyInput(t *testing.T) {
	_, err := Forecaster{}.Forecast(nil, 7)

	assert.ErrorIs(t, err, ErrNoData)
}

func TestForecastConstantSeriesStaysFlat(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := dailyRecords(start, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100)

	got, err := Forecaster{}.Forecast(records, 7)
	require.NoError(t, err)

	assert.InDelta(t, 0, got.Slope, 1e-9)
	assert.InDelta(t, 100, got.Intercept, 1e-9)

	require.Len(t, got.Points, 14+7)
	for _, p := range got.Points[14:] {
		assert.Equal(t, domain.SeriesForecast, p.Series)
		assert.InDelta(t, 100, p.Revenue, 1e-9)
	}
}

func TestForecastLinearTrend(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// Revenue = 10 + 5*x, exact fit.
	records := dailyRecords(start, 10, 15, 20, 25, 30)

	got, err := Forecaster{}.Forecast(records, 3)
	require.NoError(t, err)

	assert.InDelta(t, 5, got.Slope, 1e-9)
	assert.InDelta(t, 10, got.Intercept, 1e-9)

	require.Len(t, got.Points, 8)
	assert.InDelta(t, 35, got.Points[5].Revenue, 1e-9)
	assert.InDelta(t, 50, got.Points[7].Revenue, 1e-9)
	assert.Equal(t, start.AddDate(0, 0, 5), got.Points[5].Date)
}

func TestForecastLabelsAndAggregation(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// Two records on the same day aggregate before fitting.
	records := []domain.SalesRecord{
		{Date: start, Revenue: 40},
		{Date: start, Revenue: 60},
		{Date: start.AddDate(0, 0, 1), Revenue: 110},
	}

	got, err := Forecaster{}.Forecast(records, 1)
	require.NoError(t, err)

	require.Len(t, got.Points, 3)
	assert.Equal(t, domain.SeriesReal, got.Points[0].Series)
	assert.Equal(t, 100.0, got.Points[0].Revenue)
	assert.Equal(t, domain.SeriesReal, got.Points[1].Series)
	assert.Equal(t, domain.SeriesForecast, got.Points[2].Series)
	assert.InDelta(t, 120, got.Points[2].Revenue, 1e-9)
}

func TestForecastSingleDayProjectsMean(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := dailyRecords(start, 80)

	got, err := Forecaster{}.Forecast(records, 2)
	require.NoError(t, err)

	assert.InDelta(t, 0, got.Slope, 1e-9)
	require.Len(t, got.Points, 3)
	for _, p := range got.Points {
		assert.InDelta(t, 80, p.Revenue, 1e-9)
	}
}

func TestForecastNegativePredictionsAreNotClamped(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := dailyRecords(start, 30, 20, 10)

	got, err := Forecaster{}.Forecast(records, 2)
	require.NoError(t, err)

	require.Len(t, got.Points, 5)
	assert.InDelta(t, 0, got.Points[3].Revenue, 1e-9)
	assert.InDelta(t, -10, got.Points[4].Revenue, 1e-9)
}
