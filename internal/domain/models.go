// backend-go/internal/domain/models.go
package domain

import "time"

// RawTable is a tabular dataset as read from a source, before any typing.
// Columns holds the header in order; every row has len(Columns) cells.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (t *RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table carries the named column.
func (t *RawTable) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Clone returns a deep copy. Pipeline stages never mutate their input.
func (t *RawTable) Clone() *RawTable {
	out := &RawTable{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// SalesRecord is a single cleaned sales row in the canonical schema,
// including the derived metrics added by the transformer.
type SalesRecord struct {
	Date       time.Time `json:"date"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	Cost       float64   `json:"cost"`
	Region     string    `json:"region"`
	Channel    string    `json:"channel"`

	// Optional columns; empty when the source file does not carry them.
	Status      string `json:"status,omitempty"`
	Category    string `json:"category,omitempty"`
	ProductName string `json:"product_name,omitempty"`

	// Derived metrics added by the transformer.
	Revenue     float64 `json:"revenue"`
	TotalCost   float64 `json:"total_cost"`
	Margin      float64 `json:"margin"`
	MarginRatio float64 `json:"margin_ratio"`
}

// ValidationResult reports the outcome of validating a normalized table.
// Errors block further processing; warnings are informational.
// Valid is true exactly when Errors is empty.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// CleaningReport summarizes what the cleaner changed, in check order.
type CleaningReport struct {
	RowsRemoved int      `json:"rows_removed"`
	Warnings    []string `json:"warnings"`
}

// Period is a closed date interval used for filtering and comparison.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Selection holds the user's slice of the dataset. An empty string on a
// dimension means "no filter". Start must not be after End.
type Selection struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Region    string    `json:"region,omitempty"`
	Channel   string    `json:"channel,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
}

// MetricComparison compares a scalar metric between the current period and
// the immediately preceding one. A prior of exactly 0 reports 0% change
// regardless of the current value; callers that care should check Prior.
type MetricComparison struct {
	Current   float64 `json:"current"`
	Prior     float64 `json:"prior"`
	Delta     float64 `json:"delta"`
	PctChange float64 `json:"pct_change"`
}
