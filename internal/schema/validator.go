package schema

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

// ValidatorConfig carries the limits the validator enforces. It is a plain
// value so tests can build one without touching the process environment.
type ValidatorConfig struct {
	// MaxRows caps the accepted table size.
	MaxRows int
	// DateFormat, when set, is the only accepted date layout. Empty means
	// permissive multi-layout parsing.
	DateFormat string
}

// Validator checks a normalized table against the schema. It is purely
// diagnostic: it never removes or repairs rows.
type Validator struct {
	schema Schema
	cfg    ValidatorConfig
}

func NewValidator(s Schema, cfg ValidatorConfig) *Validator {
	return &Validator{schema: s, cfg: cfg}
}

// Validate runs the check pipeline. Size and missing-column failures
// short-circuit; the per-column type checks accumulate so the user sees
// every convertibility problem at once.
func (v *Validator) Validate(t *domain.RawTable) domain.ValidationResult {
	var errs, warnings []string

	if v.cfg.MaxRows > 0 && len(t.Rows) > v.cfg.MaxRows {
		errs = append(errs, fmt.Sprintf(
			"the file has %d rows and exceeds the maximum allowed (%d); upload a smaller file or pre-filter the data",
			len(t.Rows), v.cfg.MaxRows))
		return result(errs, warnings)
	}

	var missing []string
	for _, col := range v.schema.Required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Sprintf(
			"required columns missing from the file: %s", strings.Join(missing, ", ")))
		return result(errs, warnings)
	}

	if !v.dateColumnConvertible(t) {
		errs = append(errs, fmt.Sprintf(
			"column %q could not be converted to dates; expected values like '2025-01-31' or '31/01/2025'", ColDate))
	}

	for _, col := range []string{ColQuantity, ColPrice, ColCost} {
		if !v.numericColumnConvertible(t, col) {
			errs = append(errs, fmt.Sprintf(
				"column %q could not be converted to numbers; check for text or stray symbols", col))
		}
	}

	for _, col := range []string{ColQuantity, ColPrice, ColCost} {
		if columnHasEmpty(t, col) {
			warnings = append(warnings, fmt.Sprintf(
				"column %q has empty values; they will be treated as 0 during cleaning", col))
		}
	}
	for _, col := range []string{ColQuantity, ColPrice, ColCost} {
		if columnHasNegative(t, col) {
			warnings = append(warnings, fmt.Sprintf(
				"column %q has negative values; review whether they are returns or data errors", col))
		}
	}

	return result(errs, warnings)
}

func result(errs, warnings []string) domain.ValidationResult {
	return domain.ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// Empty cells count as missing, not as conversion failures; the cleaner
// handles them later. This mirrors how the checks behave on NaN cells.
func (v *Validator) dateColumnConvertible(t *domain.RawTable) bool {
	idx := t.ColumnIndex(ColDate)
	for _, row := range t.Rows {
		if strings.TrimSpace(row[idx]) == "" {
			continue
		}
		if _, ok := ParseDate(row[idx], v.cfg.DateFormat); !ok {
			return false
		}
	}
	return true
}

func (v *Validator) numericColumnConvertible(t *domain.RawTable, col string) bool {
	idx := t.ColumnIndex(col)
	for _, row := range t.Rows {
		if strings.TrimSpace(row[idx]) == "" {
			continue
		}
		if _, ok := ParseNumber(row[idx]); !ok {
			return false
		}
	}
	return true
}

func columnHasEmpty(t *domain.RawTable, col string) bool {
	idx := t.ColumnIndex(col)
	for _, row := range t.Rows {
		if strings.TrimSpace(row[idx]) == "" {
			return true
		}
	}
	return false
}

func columnHasNegative(t *domain.RawTable, col string) bool {
	idx := t.ColumnIndex(col)
	for _, row := range t.Rows {
		if n, ok := ParseNumber(row[idx]); ok && n < 0 {
			return true
		}
	}
	return false
}
