package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/source"
)

const insertBatchSize = 500

// SalesRepository writes cleaned sales records into the sales table.
type SalesRepository struct {
	db *source.DB
}

func NewSalesRepository(db *source.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

type salesRow struct {
	Date        string  `db:"date"`
	OrderID     string  `db:"order_id"`
	CustomerID  string  `db:"customer_id"`
	ProductID   string  `db:"product_id"`
	ProductName string  `db:"product_name"`
	Quantity    float64 `db:"quantity"`
	Price       float64 `db:"price"`
	Cost        float64 `db:"cost"`
	Region      string  `db:"region"`
	Channel     string  `db:"channel"`
	Status      string  `db:"status"`
	Category    string  `db:"category"`
}

const insertSalesQuery = `
	INSERT INTO sales (date, order_id, customer_id, product_id, product_name,
		quantity, price, cost, region, channel, status, category)
	VALUES (:date, :order_id, :customer_id, :product_id, :product_name,
		:quantity, :price, :cost, :region, :channel, :status, :category)`

// InsertRecords inserts records in batches inside a single transaction.
func (r *SalesRepository) InsertRecords(ctx context.Context, records []domain.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for start := 0; start < len(records); start += insertBatchSize {
			end := start + insertBatchSize
			if end > len(records) {
				end = len(records)
			}

			rows := make([]salesRow, 0, end-start)
			for _, rec := range records[start:end] {
				rows = append(rows, salesRow{
					Date:        rec.Date.Format("2006-01-02"),
					OrderID:     rec.OrderID,
					CustomerID:  rec.CustomerID,
					ProductID:   rec.ProductID,
					ProductName: rec.ProductName,
					Quantity:    rec.Quantity,
					Price:       rec.Price,
					Cost:        rec.Cost,
					Region:      rec.Region,
					Channel:     rec.Channel,
					Status:      rec.Status,
					Category:    rec.Category,
				})
			}

			if _, err := tx.NamedExecContext(ctx, insertSalesQuery, rows); err != nil {
				return fmt.Errorf("insert sales batch: %w", err)
			}
		}
		return nil
	})
}

// TruncateSales empties the sales table before a full reseed.
func (r *SalesRepository) TruncateSales(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "TRUNCATE TABLE sales")
	if err != nil {
		return fmt.Errorf("truncate sales: %w", err)
	}
	return nil
}
