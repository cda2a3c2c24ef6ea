package schema

import (
	"strings"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

// Normalizer renames arbitrary input columns to the canonical schema.
// It never fails: unknown columns keep their cleaned name so optional or
// extra columns pass through untouched.
type Normalizer struct {
	schema Schema
}

func NewNormalizer(s Schema) *Normalizer {
	return &Normalizer{schema: s}
}

// CleanColumnName trims, lowercases, collapses internal whitespace runs and
// replaces spaces with underscores: " Región " -> "región".
func CleanColumnName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "_")
}

// Normalize returns a new table with the same rows and renamed columns.
func (n *Normalizer) Normalize(t *domain.RawTable) *domain.RawTable {
	out := t.Clone()
	for i, col := range out.Columns {
		cleaned := CleanColumnName(col)
		if canonical, ok := n.schema.Aliases[cleaned]; ok {
			out.Columns[i] = canonical
		} else {
			out.Columns[i] = cleaned
		}
	}
	return out
}
