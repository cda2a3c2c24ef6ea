// Package etl turns a validated raw table into typed sales records and
// derives the financial metrics the dashboard works with.
package etl

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/schema"
)

// Cleaner coerces a normalized table into typed records, dropping rows
// that cannot be repaired and reporting everything it changed.
//
// The pass is order-sensitive: rows with invalid dates are dropped first,
// numeric fields are coerced with unparseable or empty values becoming 0,
// then rows with negative quantity, price and cost are dropped in that
// order, each drop evaluated against the table state left by the previous
// one.
type Cleaner struct {
	// DateFormat, when set, is the only accepted date layout.
	DateFormat string
}

// Clean converts the table into typed records. The input is not modified.
func (c *Cleaner) Clean(t *domain.RawTable) ([]domain.SalesRecord, domain.CleaningReport) {
	var warnings []string
	initial := len(t.Rows)

	idxDate := t.ColumnIndex(schema.ColDate)
	idxOrder := t.ColumnIndex(schema.ColOrderID)
	idxCustomer := t.ColumnIndex(schema.ColCustomerID)
	idxProduct := t.ColumnIndex(schema.ColProductID)
	idxQuantity := t.ColumnIndex(schema.ColQuantity)
	idxPrice := t.ColumnIndex(schema.ColPrice)
	idxCost := t.ColumnIndex(schema.ColCost)
	idxRegion := t.ColumnIndex(schema.ColRegion)
	idxChannel := t.ColumnIndex(schema.ColChannel)
	idxStatus := t.ColumnIndex(schema.ColStatus)
	idxCategory := t.ColumnIndex(schema.ColCategory)
	idxName := t.ColumnIndex(schema.ColProductName)

	records := make([]domain.SalesRecord, 0, len(t.Rows))
	badDates := 0
	replacedQuantity, replacedPrice, replacedCost := 0, 0, 0

	coerce := func(cell string, replaced *int) float64 {
		v, ok := schema.ParseNumber(cell)
		if !ok {
			*replaced++
			return 0
		}
		return v
	}

	for _, row := range t.Rows {
		date, ok := schema.ParseDate(row[idxDate], c.DateFormat)
		if !ok {
			badDates++
			continue
		}
		rec := domain.SalesRecord{
			Date:       date,
			OrderID:    strings.TrimSpace(row[idxOrder]),
			CustomerID: strings.TrimSpace(row[idxCustomer]),
			ProductID:  strings.TrimSpace(row[idxProduct]),
			Quantity:   coerce(row[idxQuantity], &replacedQuantity),
			Price:      coerce(row[idxPrice], &replacedPrice),
			Cost:       coerce(row[idxCost], &replacedCost),
			Region:     strings.TrimSpace(row[idxRegion]),
			Channel:    strings.TrimSpace(row[idxChannel]),
		}
		if idxStatus >= 0 {
			rec.Status = strings.TrimSpace(row[idxStatus])
		}
		if idxCategory >= 0 {
			rec.Category = strings.TrimSpace(row[idxCategory])
		}
		if idxName >= 0 {
			rec.ProductName = strings.TrimSpace(row[idxName])
		}
		records = append(records, rec)
	}

	if badDates > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d rows had an invalid %q value and were removed", badDates, schema.ColDate))
	}
	for _, repl := range []struct {
		col   string
		count int
	}{
		{schema.ColQuantity, replacedQuantity},
		{schema.ColPrice, replacedPrice},
		{schema.ColCost, replacedCost},
	} {
		if repl.count > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"%d non-numeric or empty values in %q were replaced with 0", repl.count, repl.col))
		}
	}

	records, warnings = dropNegative(records, warnings, schema.ColQuantity,
		func(r domain.SalesRecord) float64 { return r.Quantity })
	records, warnings = dropNegative(records, warnings, schema.ColPrice,
		func(r domain.SalesRecord) float64 { return r.Price })
	records, warnings = dropNegative(records, warnings, schema.ColCost,
		func(r domain.SalesRecord) float64 { return r.Cost })

	return records, domain.CleaningReport{
		RowsRemoved: initial - len(records),
		Warnings:    warnings,
	}
}

func dropNegative(records []domain.SalesRecord, warnings []string, col string, value func(domain.SalesRecord) float64) ([]domain.SalesRecord, []string) {
	kept := make([]domain.SalesRecord, 0, len(records))
	dropped := 0
	for _, r := range records {
		if value(r) < 0 {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d rows with a negative %q were removed", dropped, col))
	}
	return kept, warnings
}
