package schema

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

func validTable(rows ...[]string) *domain.RawTable {
	if len(rows) == 0 {
		rows = [][]string{
			{"2025-01-01", "O1", "C1", "P1", "2", "10", "4", "Norte", "Online"},
		}
	}
	return &domain.RawTable{
		Columns: []string{ColDate, ColOrderID, ColCustomerID, ColProductID, ColQuantity, ColPrice, ColCost, ColRegion, ColChannel},
		Rows:    rows,
	}
}

func TestValidateAcceptsWellFormedTable(t *testing.T) {
	v := NewValidator(DefaultSchema(), ValidatorConfig{MaxRows: 100})

	res := v.Validate(validTable())

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateRowLimitShortCircuits(t *testing.T) {
	v := NewValidator(DefaultSchema(), ValidatorConfig{MaxRows: 2})

	rows := make([][]string, 3)
	for i := range rows {
		// Broken on purpose: the date is garbage, but the size check
		// must fire alone.
		rows[i] = []string{"not-a-date", "O1", "C1", "P1", "x", "10", "4", "Norte", "Online"}
	}

	res := v.Validate(validTable(rows...))

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "exceeds the maximum allowed (2)")
}

func TestValidateMissingColumnsShortCircuits(t *testing.T) {
	v := NewValidator(DefaultSchema(), ValidatorConfig{MaxRows: 100})

	res := v.Validate(&domain.RawTable{
		Columns: []string{ColDate, ColOrderID},
		Rows:    [][]string{{"garbage", "O1"}},
	})

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "required columns missing")
	for _, col := range []string{ColCustomerID, ColProductID, ColQuantity, ColPrice, ColCost, ColRegion, ColChannel} {
		assert.Contains(t, res.Errors[0], col)
	}
}

func TestValidateAccumulatesTypeErrors(t *testing.T) {
	v := NewValidator(DefaultSchema(), ValidatorConfig{MaxRows: 100})

	res := v.Validate(validTable(
		[]string{"yesterday", "O1", "C1", "P1", "two", "10", "4", "Norte", "Online"},
		[]string{"2025-01-02", "O2", "C2", "P2", "1", "$9.99", "4", "Sur", "Tienda"},
	))

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0], fmt.Sprintf("column %q could not be converted to dates", ColDate))
	assert.Contains(t, res.Errors[1], ColQuantity)
	assert.Contains(t, res.Errors[2], ColPrice)
}

func TestValidateEmptyCellsAreWarningsNotErrors(t *testing.T) {
	v := NewValidator(DefaultSchema(), ValidatorConfig{MaxRows: 100})

	res := v.Validate(validTable(
		[]string{"2025-01-01", "O1", "C1", "P1", "", "10", "4", "Norte", "Online"},
	))

	assert.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], fmt.Sprintf("column %q has empty values", ColQuantity))
}

func TestValidateNegativeValuesAreWarnings(t *testing.T) {
	v := NewValidator(DefaultSchema(), ValidatorConfig{MaxRows: 100})

	res := v.Validate(validTable(
		[]string{"2025-01-01", "O1", "C1", "P1", "-2", "10", "-4", "Norte", "Online"},
	))

	assert.True(t, res.Valid)
	require.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0], ColQuantity)
	assert.Contains(t, res.Warnings[1], ColCost)
	for _, w := range res.Warnings {
		assert.True(t, strings.Contains(w, "negative values"), w)
	}
}

func TestValidateStrictDateFormat(t *testing.T) {
	v := NewValidator(DefaultSchema(), ValidatorConfig{MaxRows: 100, DateFormat: "2006-01-02"})

	res := v.Validate(validTable(
		[]string{"31/01/2025", "O1", "C1", "P1", "1", "10", "4", "Norte", "Online"},
	))

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "could not be converted to dates")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2025-01-31", true},
		{"2025-01-31 10:30:00", true},
		{"31/01/2025", true},
		{"2025/01/31", true},
		{" 2025-01-31 ", true},
		{"", false},
		{"31-01-2025", false},
		{"soon", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := ParseDate(tt.input, "")
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseNumber(t *testing.T) {
	n, ok := ParseNumber(" 12.5 ")
	require.True(t, ok)
	assert.Equal(t, 12.5, n)

	_, ok = ParseNumber("")
	assert.False(t, ok)

	_, ok = ParseNumber("12,5")
	assert.False(t, ok)
}
