package analysis

import (
	"time"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

// PriorPeriod returns the interval immediately preceding [start, end]:
// same length, ending the day before start, no gap and no overlap.
func PriorPeriod(start, end time.Time) domain.Period {
	duration := end.Sub(start)
	priorEnd := start.AddDate(0, 0, -1)
	return domain.Period{
		Start: priorEnd.Add(-duration),
		End:   priorEnd,
	}
}

// Compare computes the absolute and percentage change between a current
// and a prior scalar metric. A prior of exactly 0 reports 0% change even
// when current is large; the percentage is undefined in that case and 0
// is the documented stand-in.
func Compare(current, prior float64) domain.MetricComparison {
	delta := current - prior
	pct := 0.0
	if prior != 0 {
		pct = delta / prior * 100
	}
	return domain.MetricComparison{
		Current:   current,
		Prior:     prior,
		Delta:     delta,
		PctChange: pct,
	}
}
