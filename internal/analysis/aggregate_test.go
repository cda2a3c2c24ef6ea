package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

func TestSummarizeDailyGroupsAndSorts(t *testing.T) {
	records := []domain.SalesRecord{
		{Date: day(5), Revenue: 10, Margin: 4},
		{Date: day(1), Revenue: 20, Margin: 8},
		{Date: day(5), Revenue: 5, Margin: 1},
	}

	got := SummarizeDaily(records)

	require.Len(t, got, 2)
	assert.Equal(t, day(1), got[0].Date)
	assert.Equal(t, 20.0, got[0].Revenue)
	assert.Equal(t, day(5), got[1].Date)
	assert.Equal(t, 15.0, got[1].Revenue)
	assert.Equal(t, 5.0, got[1].Margin)
}

func TestSummarizeByRegionSortsByRevenueDesc(t *testing.T) {
	records := []domain.SalesRecord{
		{Region: "Norte", Revenue: 10, Margin: 2},
		{Region: "Sur", Revenue: 50, Margin: 9},
		{Region: "Norte", Revenue: 15, Margin: 3},
		{Region: "", Revenue: 99},
	}

	got := SummarizeByRegion(records)

	require.Len(t, got, 2)
	assert.Equal(t, "Sur", got[0].Value)
	assert.Equal(t, 50.0, got[0].Revenue)
	assert.Equal(t, "Norte", got[1].Value)
	assert.Equal(t, 25.0, got[1].Revenue)
	assert.Equal(t, 5.0, got[1].Margin)
}

func TestSummarizeProductsCountsDistinctOrders(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductID: "P1", OrderID: "O1", Revenue: 10, Quantity: 1},
		{ProductID: "P1", OrderID: "O1", Revenue: 10, Quantity: 2},
		{ProductID: "P1", OrderID: "O2", Revenue: 10, Quantity: 1},
		{ProductID: "P2", OrderID: "O3", Revenue: 100, Quantity: 5},
	}

	got := SummarizeProducts(records, 0)

	require.Len(t, got, 2)
	assert.Equal(t, "P2", got[0].ProductID)
	assert.Equal(t, 1, got[0].Orders)
	assert.Equal(t, "P1", got[1].ProductID)
	assert.Equal(t, 30.0, got[1].Revenue)
	assert.Equal(t, 4.0, got[1].Quantity)
	assert.Equal(t, 2, got[1].Orders)
}

func TestSummarizeProductsAppliesLimit(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductID: "P1", Revenue: 1},
		{ProductID: "P2", Revenue: 3},
		{ProductID: "P3", Revenue: 2},
	}

	got := SummarizeProducts(records, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "P2", got[0].ProductID)
	assert.Equal(t, "P3", got[1].ProductID)
}

func TestTotalsAndDistinctCounts(t *testing.T) {
	records := []domain.SalesRecord{
		{OrderID: "O1", CustomerID: "C1", Revenue: 10, Margin: 3},
		{OrderID: "O1", CustomerID: "C1", Revenue: 20, Margin: 7},
		{OrderID: "O2", CustomerID: "C2", Revenue: 5, Margin: 1},
	}

	assert.Equal(t, 35.0, TotalRevenue(records))
	assert.Equal(t, 11.0, TotalMargin(records))
	assert.Equal(t, 2, DistinctCustomers(records))
	assert.Equal(t, 2, DistinctOrders(records))
}

func TestOptionsDerivesRangeAndSortedValues(t *testing.T) {
	records := []domain.SalesRecord{
		{Date: day(10), Region: "Sur", Channel: "Tienda", ProductID: "P2"},
		{Date: day(2), Region: "Norte", Channel: "Online", ProductID: "P1"},
		{Date: day(7), Region: "Sur", Channel: "Online", ProductID: "P1"},
	}

	got := Options(records)

	assert.Equal(t, day(2), got.MinDate)
	assert.Equal(t, day(10), got.MaxDate)
	assert.Equal(t, []string{"Norte", "Sur"}, got.Regions)
	assert.Equal(t, []string{"Online", "Tienda"}, got.Channels)
	assert.Equal(t, []string{"P1", "P2"}, got.Products)
}
