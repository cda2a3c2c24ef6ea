package source

import (
	"context"
	"fmt"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/storage"
)

// ObjectSource fetches a CSV object from S3-compatible storage and parses
// it with the same delimiter/encoding tolerance as local files.
type ObjectSource struct {
	store storage.ObjectStorage
	key   string
}

func NewObjectSource(store storage.ObjectStorage, key string) *ObjectSource {
	return &ObjectSource{store: store, key: key}
}

func (s *ObjectSource) Load(ctx context.Context) (*domain.RawTable, error) {
	data, err := s.store.GetObject(ctx, s.key)
	if err != nil {
		return nil, &DataSourceError{Source: "object-storage", Err: err}
	}
	table, err := ParseCSV(data)
	if err != nil {
		return nil, &DataSourceError{Source: "object-storage", Err: fmt.Errorf("parsing %s: %w", s.key, err)}
	}
	return table, nil
}
