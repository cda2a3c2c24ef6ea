package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/config"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/schema"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/service"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/source"
	"github.com/andresuchdata/ventas-bi/backend-go/pkg/logger"
)

const dateLayout = "2006-01-02"

func newFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the sales CSV file",
		Required: true,
	}
}

func selectionFlags() []cli.Flag {
	return []cli.Flag{
		newFileFlag(),
		&cli.StringFlag{Name: "start", Usage: "Period start (YYYY-MM-DD), defaults to the first date in the file"},
		&cli.StringFlag{Name: "end", Usage: "Period end (YYYY-MM-DD), defaults to the last date in the file"},
		&cli.StringFlag{Name: "region", Usage: "Filter by region"},
		&cli.StringFlag{Name: "channel", Usage: "Filter by channel"},
		&cli.StringFlag{Name: "product", Usage: "Filter by product ID"},
	}
}

func main() {
	_ = godotenv.Load()
	logger.SetLevel("warn")

	app := &cli.App{
		Name:  "report",
		Usage: "Run the sales pipeline against a CSV file and print JSON results",
		Commands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Validate a sales CSV file against the expected schema",
				Flags:  []cli.Flag{newFileFlag()},
				Action: runValidate,
			},
			{
				Name:   "dashboard",
				Usage:  "Compute the full dashboard for a period",
				Flags:  selectionFlags(),
				Action: runDashboard,
			},
			{
				Name:  "forecast",
				Usage: "Project daily revenue beyond the selected period",
				Flags: append(selectionFlags(),
					&cli.IntFlag{Name: "days", Usage: "Forecast horizon in days", Value: 0}),
				Action: runForecast,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runValidate(c *cli.Context) error {
	cfg := config.Load()

	loader := source.NewLoader(
		source.NewCSVSource(c.String("file")),
		schema.DefaultSchema(),
		schema.ValidatorConfig{MaxRows: cfg.Data.MaxRows, DateFormat: cfg.Data.DateFormat},
	)

	_, warnings, err := loader.Load(c.Context)
	if err != nil {
		var schemaErr *source.SchemaValidationError
		if errors.As(err, &schemaErr) {
			return printJSON(domain.ValidationResult{Errors: schemaErr.Errors})
		}
		return err
	}

	return printJSON(domain.ValidationResult{Valid: true, Warnings: warnings})
}

func runDashboard(c *cli.Context) error {
	dashboard, err := computeDashboard(c, 0)
	if err != nil {
		return err
	}

	// The record lists are noise on a terminal.
	dashboard.Current = nil
	dashboard.Prior = nil
	return printJSON(dashboard)
}

func runForecast(c *cli.Context) error {
	dashboard, err := computeDashboard(c, c.Int("days"))
	if err != nil {
		return err
	}

	if dashboard.Forecast == nil {
		return errors.New("no sales in the selected period")
	}
	return printJSON(dashboard.Forecast)
}

func computeDashboard(c *cli.Context, horizon int) (*domain.Dashboard, error) {
	cfg := config.Load()

	svc := service.NewDashboardService(cfg.Data, nil)
	if err := svc.LoadFrom(c.Context, source.NewCSVSource(c.String("file"))); err != nil {
		return nil, err
	}

	options, err := svc.Options(c.Context)
	if err != nil {
		return nil, err
	}

	sel := domain.Selection{
		Start:     options.MinDate,
		End:       options.MaxDate,
		Region:    c.String("region"),
		Channel:   c.String("channel"),
		ProductID: c.String("product"),
	}
	if raw := c.String("start"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --start: %w", err)
		}
		sel.Start = start
	}
	if raw := c.String("end"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --end: %w", err)
		}
		sel.End = end
	}

	return svc.Dashboard(c.Context, sel, horizon)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
