package source

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

// salesQuery reads the table cmd/seed populates. Column names are already
// canonical, so normalization is a no-op for this source.
const salesQuery = `
	SELECT date, order_id, customer_id, product_id,
	       quantity, price, cost, region, channel
	FROM sales
	ORDER BY date, order_id`

// PostgresSource loads the sales table from Postgres as a raw table, so the
// same normalization/validation/cleaning pipeline applies regardless of
// where the data came from.
type PostgresSource struct {
	db *DB
}

func NewPostgresSource(db *DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Load(ctx context.Context) (*domain.RawTable, error) {
	rows, err := s.db.QueryxContext(ctx, salesQuery)
	if err != nil {
		return nil, &DataSourceError{Source: "postgres", Err: fmt.Errorf("querying sales: %w", err)}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &DataSourceError{Source: "postgres", Err: err}
	}

	table := &domain.RawTable{Columns: cols}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, &DataSourceError{Source: "postgres", Err: fmt.Errorf("scanning sales row: %w", err)}
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = stringifyCell(v)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &DataSourceError{Source: "postgres", Err: err}
	}
	return table, nil
}

func stringifyCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format("2006-01-02")
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
