package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/config"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/etl"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/repository"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/schema"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/source"
	"github.com/andresuchdata/ventas-bi/backend-go/pkg/logger"
)

const createSalesTable = `
	CREATE TABLE IF NOT EXISTS sales (
		id           BIGSERIAL PRIMARY KEY,
		date         DATE NOT NULL,
		order_id     TEXT NOT NULL,
		customer_id  TEXT NOT NULL,
		product_id   TEXT NOT NULL,
		product_name TEXT NOT NULL DEFAULT '',
		quantity     DOUBLE PRECISION NOT NULL,
		price        DOUBLE PRECISION NOT NULL,
		cost         DOUBLE PRECISION NOT NULL,
		region       TEXT NOT NULL,
		channel      TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date);
	CREATE INDEX IF NOT EXISTS idx_sales_region ON sales (region);
	CREATE INDEX IF NOT EXISTS idx_sales_channel ON sales (channel)`

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}
	logger.SetLevel("info")

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the sales table from a CSV file",
		Commands: []*cli.Command{
			{
				Name:  "schema",
				Usage: "Create the sales table and its indexes",
				Flags: []cli.Flag{newDBURLFlag()},
				Action: func(c *cli.Context) error {
					db, err := source.NewDB("postgres", c.String("db-url"))
					if err != nil {
						return err
					}
					defer db.Close()

					if _, err := db.ExecContext(c.Context, createSalesTable); err != nil {
						return fmt.Errorf("create sales table: %w", err)
					}
					log.Info().Msg("sales table ready")
					return nil
				},
			},
			{
				Name:  "sales",
				Usage: "Load a cleaned sales CSV into the database",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the sales CSV file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "truncate",
						Usage: "Empty the sales table before loading",
					},
				},
				Action: runSeedSales,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeedSales(c *cli.Context) error {
	cfg := config.Load()

	db, err := source.NewDB("postgres", c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	loader := source.NewLoader(
		source.NewCSVSource(c.String("file")),
		schema.DefaultSchema(),
		schema.ValidatorConfig{MaxRows: cfg.Data.MaxRows, DateFormat: cfg.Data.DateFormat},
	)
	table, warnings, err := loader.Load(c.Context)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn().Msg(w)
	}

	cleaner := etl.Cleaner{DateFormat: cfg.Data.DateFormat}
	records, report := cleaner.Clean(table)
	if report.RowsRemoved > 0 {
		log.Warn().Int("rows_removed", report.RowsRemoved).Msg("rows dropped during cleaning")
	}

	repo := repository.NewSalesRepository(db)

	if c.Bool("truncate") {
		if err := repo.TruncateSales(c.Context); err != nil {
			return err
		}
	}

	if err := repo.InsertRecords(c.Context, records); err != nil {
		return err
	}

	log.Info().Int("rows", len(records)).Msg("sales table seeded")
	return nil
}
