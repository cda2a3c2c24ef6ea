package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

func TestCleanColumnName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and lowercases", " Región ", "región"},
		{"uppercase", "REGION", "region"},
		{"collapses internal spaces", "Order   ID", "order_id"},
		{"tabs count as whitespace", "product\tname", "product_name"},
		{"already clean", "channel", "channel"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanColumnName(tt.input))
		})
	}
}

func TestNormalizeRenamesAliases(t *testing.T) {
	n := NewNormalizer(DefaultSchema())

	table := &domain.RawTable{
		Columns: []string{"Fecha", "ID Orden", "id_cliente", "ID_Producto", "Cantidad", "Precio", "Costo", " Región ", "CANAL"},
		Rows:    [][]string{{"2025-01-01", "O1", "C1", "P1", "1", "10", "4", "Norte", "Online"}},
	}

	got := n.Normalize(table)

	want := []string{ColDate, ColOrderID, ColCustomerID, ColProductID, ColQuantity, ColPrice, ColCost, ColRegion, ColChannel}
	assert.Equal(t, want, got.Columns)

	// The input table must stay untouched.
	assert.Equal(t, "Fecha", table.Columns[0])
}

func TestNormalizeRegionSpellings(t *testing.T) {
	n := NewNormalizer(DefaultSchema())

	tests := []struct {
		name   string
		header string
	}{
		{"spanish accented with padding", " Región "},
		{"french accented", "région"},
		{"uppercase unaccented", "REGION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(&domain.RawTable{Columns: []string{tt.header}})
			require.Equal(t, []string{ColRegion}, got.Columns)

			again := n.Normalize(got)
			assert.Equal(t, got.Columns, again.Columns)
		})
	}
}

func TestNormalizeKeepsUnknownColumns(t *testing.T) {
	n := NewNormalizer(DefaultSchema())

	got := n.Normalize(&domain.RawTable{
		Columns: []string{"date", "Some Extra Column"},
	})

	require.Len(t, got.Columns, 2)
	assert.Equal(t, ColDate, got.Columns[0])
	assert.Equal(t, "some_extra_column", got.Columns[1])
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := NewNormalizer(DefaultSchema())

	table := &domain.RawTable{Columns: []string{"Fecha", "Cantidad"}}
	once := n.Normalize(table)
	twice := n.Normalize(once)

	assert.Equal(t, once.Columns, twice.Columns)
}
