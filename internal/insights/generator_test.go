package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

func rec(revenue, margin float64, region, channel, product string) domain.SalesRecord {
	return domain.SalesRecord{
		Date:      time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Region:    region,
		Channel:   channel,
		ProductID: product,
		Revenue:   revenue,
		Margin:    margin,
	}
}

func TestGenerateEmptyCurrentReturnsSingleNeutral(t *testing.T) {
	got := Generator{}.Generate(nil, nil, "")

	require.Len(t, got, 1)
	assert.Equal(t, "No data", got[0].Title)
	assert.Equal(t, domain.InsightNeutral, got[0].Category)
}

func TestGenerateRuleOrder(t *testing.T) {
	current := []domain.SalesRecord{
		rec(100, 50, "Norte", "Online", "P1"),
		rec(80, 30, "Sur", "Tienda", "P2"),
	}
	prior := []domain.SalesRecord{
		rec(100, 40, "Norte", "Online", "P1"),
	}

	got := Generator{}.Generate(current, prior, "")

	require.Len(t, got, 4)
	assert.Equal(t, "Performance vs prior period", got[0].Title)
	assert.Equal(t, "Leading region", got[1].Title)
	assert.Equal(t, "Strongest channel", got[2].Title)
	assert.Equal(t, "Leading product and profitability", got[3].Title)
}

func TestGenerateRevenueTrendCategories(t *testing.T) {
	tests := []struct {
		name           string
		current, prior float64
		want           domain.InsightCategory
	}{
		{"growth is positive", 120, 100, domain.InsightPositive},
		{"decline is negative", 80, 100, domain.InsightNegative},
		{"flat is neutral", 100, 100, domain.InsightNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generator{}.Generate(
				[]domain.SalesRecord{rec(tt.current, 50, "Norte", "Online", "P1")},
				[]domain.SalesRecord{rec(tt.prior, 40, "Norte", "Online", "P1")},
				"")
			require.NotEmpty(t, got)
			assert.Equal(t, tt.want, got[0].Category)
		})
	}
}

func TestGenerateNoHistoricalReference(t *testing.T) {
	got := Generator{}.Generate(
		[]domain.SalesRecord{rec(100, 50, "Norte", "Online", "P1")},
		nil,
		"")

	require.NotEmpty(t, got)
	assert.Equal(t, "No historical reference", got[0].Title)
	assert.Equal(t, domain.InsightNeutral, got[0].Category)
}

func TestGenerateAppendsFilterDescription(t *testing.T) {
	got := Generator{}.Generate(
		[]domain.SalesRecord{rec(100, 50, "Norte", "Online", "P1")},
		[]domain.SalesRecord{rec(50, 20, "Norte", "Online", "P1")},
		"(Region: Norte)")

	require.NotEmpty(t, got)
	assert.Contains(t, got[0].Message, "(Region: Norte)")
}

func TestGenerateLowMarginLeaderIsNegative(t *testing.T) {
	// Leading product margin 10% < 15%.
	got := Generator{}.Generate(
		[]domain.SalesRecord{rec(100, 10, "Norte", "Online", "P1")},
		[]domain.SalesRecord{rec(50, 20, "Norte", "Online", "P1")},
		"")

	var leader *domain.Insight
	for i := range got {
		if got[i].Title == "Leading product and profitability" {
			leader = &got[i]
		}
	}
	require.NotNil(t, leader)
	assert.Equal(t, domain.InsightNegative, leader.Category)
}

func TestGenerateConcentrationRisk(t *testing.T) {
	// P1 carries 70% of revenue: leading product and concentration risk
	// must both appear.
	current := []domain.SalesRecord{
		rec(70, 30, "Norte", "Online", "P1"),
		rec(30, 10, "Sur", "Tienda", "P2"),
	}
	prior := []domain.SalesRecord{rec(50, 20, "Norte", "Online", "P1")}

	got := Generator{}.Generate(current, prior, "")

	require.Len(t, got, 5)
	assert.Equal(t, "Leading product and profitability", got[3].Title)
	assert.Equal(t, "Concentration risk", got[4].Title)
	assert.Equal(t, domain.InsightNegative, got[4].Category)
	assert.Contains(t, got[4].Message, "P1")
}

func TestGenerateNoConcentrationRiskBelowThreshold(t *testing.T) {
	current := []domain.SalesRecord{
		rec(50, 20, "Norte", "Online", "P1"),
		rec(50, 20, "Sur", "Tienda", "P2"),
	}
	prior := []domain.SalesRecord{rec(50, 20, "Norte", "Online", "P1")}

	got := Generator{}.Generate(current, prior, "")

	for _, ins := range got {
		assert.NotEqual(t, "Concentration risk", ins.Title)
	}
}
