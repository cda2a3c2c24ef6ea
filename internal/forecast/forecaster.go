// Package forecast projects daily revenue forward with a simple linear
// trend fitted over the selected period.
package forecast

import (
	"errors"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/analysis"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

// ErrNoData is returned when the selected subset has no rows to fit on.
var ErrNoData = errors.New("forecast: no data for the selected period")

// Forecaster fits ordinary least squares over revenue aggregated by day
// and extends the line horizon days past the last observed date.
//
// Each observed day gets a 0-based ordinal index regardless of calendar
// gaps: missing days collapse the index rather than advancing it. Slope
// magnitude depends on this choice, so it is kept as-is; switching to
// calendar-aware indexing would silently change every forecast.
type Forecaster struct{}

// Forecast aggregates, fits and projects. Predictions are not clamped and
// may be negative. The returned points are the historical daily series
// labelled Real followed by horizon consecutive days labelled Forecast.
func (Forecaster) Forecast(records []domain.SalesRecord, horizon int) (*domain.ForecastResult, error) {
	daily := analysis.SummarizeDaily(records)
	if len(daily) == 0 {
		return nil, ErrNoData
	}

	values := make([]float64, len(daily))
	for i, d := range daily {
		values[i] = d.Revenue
	}
	slope, intercept := fitLine(values)

	points := make([]domain.ForecastPoint, 0, len(daily)+horizon)
	for _, d := range daily {
		points = append(points, domain.ForecastPoint{
			Date:    d.Date,
			Revenue: d.Revenue,
			Series:  domain.SeriesReal,
		})
	}

	lastIndex := len(daily) - 1
	lastDate := daily[lastIndex].Date
	for i := 1; i <= horizon; i++ {
		x := float64(lastIndex + i)
		points = append(points, domain.ForecastPoint{
			Date:    lastDate.AddDate(0, 0, i),
			Revenue: slope*x + intercept,
			Series:  domain.SeriesForecast,
		})
	}

	return &domain.ForecastResult{
		Points:    points,
		Slope:     slope,
		Intercept: intercept,
	}, nil
}

// fitLine computes least-squares slope and intercept for y over x = 0..n-1.
// A single observation (or a degenerate denominator) yields a flat line at
// the mean.
func fitLine(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
