package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []domain.SalesRecord {
	return []domain.SalesRecord{
		{Date: day(1), OrderID: "O1", Region: "Norte", Channel: "Online", ProductID: "P1"},
		{Date: day(5), OrderID: "O2", Region: "Sur", Channel: "Tienda", ProductID: "P2"},
		{Date: day(10), OrderID: "O3", Region: "Norte", Channel: "Tienda", ProductID: "P1"},
	}
}

func TestFilterDateBoundsAreInclusive(t *testing.T) {
	got := Filter{}.Apply(sampleRecords(), domain.Selection{Start: day(1), End: day(5)})

	require.Len(t, got, 2)
	assert.Equal(t, "O1", got[0].OrderID)
	assert.Equal(t, "O2", got[1].OrderID)
}

func TestFilterEmptyDimensionMeansAll(t *testing.T) {
	got := Filter{}.Apply(sampleRecords(), domain.Selection{Start: day(1), End: day(31)})

	assert.Len(t, got, 3)
}

func TestFilterByDimensions(t *testing.T) {
	tests := []struct {
		name string
		sel  domain.Selection
		want []string
	}{
		{
			"region",
			domain.Selection{Start: day(1), End: day(31), Region: "Norte"},
			[]string{"O1", "O3"},
		},
		{
			"channel",
			domain.Selection{Start: day(1), End: day(31), Channel: "Tienda"},
			[]string{"O2", "O3"},
		},
		{
			"region and product",
			domain.Selection{Start: day(1), End: day(31), Region: "Norte", ProductID: "P1"},
			[]string{"O1", "O3"},
		},
		{
			"no match",
			domain.Selection{Start: day(1), End: day(31), Region: "Centro"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter{}.Apply(sampleRecords(), tt.sel)
			var ids []string
			for _, r := range got {
				ids = append(ids, r.OrderID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterOutOfRangeReturnsEmptyNotError(t *testing.T) {
	got := Filter{}.Apply(sampleRecords(), domain.Selection{Start: day(20), End: day(25)})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterIgnoresTimeOfDay(t *testing.T) {
	records := []domain.SalesRecord{
		{Date: time.Date(2025, 1, 5, 23, 59, 0, 0, time.UTC), OrderID: "O1"},
	}

	got := Filter{}.Apply(records, domain.Selection{Start: day(5), End: day(5)})

	assert.Len(t, got, 1)
}
