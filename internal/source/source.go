// Package source acquires raw sales tables (CSV files, uploaded bytes,
// Postgres, object storage) and runs them through normalization and
// validation before the pipeline sees them.
package source

import (
	"context"
	"errors"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/schema"
)

// DataSource supplies a raw table. CSV is the concrete implementation in
// use; Postgres and object-storage sources exist so callers are not tied
// to file uploads.
type DataSource interface {
	Load(ctx context.Context) (*domain.RawTable, error)
}

// Loader orchestrates raw load -> column normalization -> schema
// validation, surfacing failures as *DataSourceError or
// *SchemaValidationError.
type Loader struct {
	source     DataSource
	normalizer *schema.Normalizer
	validator  *schema.Validator
}

func NewLoader(src DataSource, s schema.Schema, cfg schema.ValidatorConfig) *Loader {
	return &Loader{
		source:     src,
		normalizer: schema.NewNormalizer(s),
		validator:  schema.NewValidator(s, cfg),
	}
}

// Load returns the normalized, validated table plus any non-blocking
// validation warnings.
func (l *Loader) Load(ctx context.Context) (*domain.RawTable, []string, error) {
	raw, err := l.source.Load(ctx)
	if err != nil {
		var dsErr *DataSourceError
		if errors.As(err, &dsErr) {
			return nil, nil, err
		}
		return nil, nil, &DataSourceError{Source: "load", Err: err}
	}

	normalized := l.normalizer.Normalize(raw)

	res := l.validator.Validate(normalized)
	if !res.Valid {
		return nil, res.Warnings, &SchemaValidationError{Errors: res.Errors}
	}
	return normalized, res.Warnings, nil
}
