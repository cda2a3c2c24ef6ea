package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/analysis"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/cache"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/config"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/etl"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/forecast"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/insights"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/schema"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/source"
)

// ErrNoDataset is returned when a dashboard is requested before any data
// source has been loaded.
var ErrNoDataset = errors.New("no dataset loaded")

// ErrInvalidSelection is returned when the selection range is reversed.
var ErrInvalidSelection = errors.New("selection start is after end")

// DashboardService runs the full pipeline: load -> clean -> transform ->
// filter x2 -> compare -> insights -> forecast -> aggregates. One request
// triggers one synchronous recomputation over the loaded dataset.
type DashboardService struct {
	cfg   config.DataConfig
	sch   schema.Schema
	cache cache.DashboardCache

	mu          sync.RWMutex
	records     []domain.SalesRecord
	cleaning    domain.CleaningReport
	warnings    []string
	fingerprint string
}

func NewDashboardService(cfg config.DataConfig, cacheImpl cache.DashboardCache) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		cfg:   cfg,
		sch:   schema.DefaultSchema(),
		cache: cacheImpl,
	}
}

// LoadFrom replaces the working dataset with the content of src, running
// normalization, validation, cleaning and metric derivation. On failure
// the previous dataset stays in place.
func (s *DashboardService) LoadFrom(ctx context.Context, src source.DataSource) error {
	loader := source.NewLoader(src, s.sch, schema.ValidatorConfig{
		MaxRows:    s.cfg.MaxRows,
		DateFormat: s.cfg.DateFormat,
	})

	table, warnings, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	cleaner := etl.Cleaner{DateFormat: s.cfg.DateFormat}
	records, report := cleaner.Clean(table)
	records = etl.Transformer{}.Transform(records)

	s.mu.Lock()
	s.records = records
	s.cleaning = report
	s.warnings = warnings
	s.fingerprint = fingerprintTable(table)
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache invalidation failed")
	}

	log.Info().
		Int("rows", len(records)).
		Int("rows_removed", report.RowsRemoved).
		Msg("dataset loaded")
	return nil
}

// Dashboard computes the full dashboard for a selection. horizon is the
// requested forecast length in days; non-positive means the configured
// default, and the value is clamped to the configured bounds.
func (s *DashboardService) Dashboard(ctx context.Context, sel domain.Selection, horizon int) (*domain.Dashboard, error) {
	if sel.Start.After(sel.End) {
		return nil, ErrInvalidSelection
	}

	s.mu.RLock()
	records := s.records
	fingerprint := s.fingerprint
	s.mu.RUnlock()

	if records == nil {
		return nil, ErrNoDataset
	}

	if cached, ok, err := s.cache.Get(ctx, fingerprint, sel); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	}

	dashboard := s.compute(records, sel, s.clampHorizon(horizon))

	if err := s.cache.Set(ctx, fingerprint, sel, dashboard); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set failed")
	}

	return dashboard, nil
}

func (s *DashboardService) compute(records []domain.SalesRecord, sel domain.Selection, horizon int) *domain.Dashboard {
	filter := analysis.Filter{}

	current := filter.Apply(records, sel)

	priorPeriod := analysis.PriorPeriod(sel.Start, sel.End)
	priorSel := sel
	priorSel.Start = priorPeriod.Start
	priorSel.End = priorPeriod.End
	prior := filter.Apply(records, priorSel)

	dashboard := &domain.Dashboard{
		Selection:   sel,
		Period:      domain.Period{Start: sel.Start, End: sel.End},
		PriorPeriod: priorPeriod,
		Current:     current,
		Prior:       prior,

		Revenue: analysis.Compare(analysis.TotalRevenue(current), analysis.TotalRevenue(prior)),
		Margin:  analysis.Compare(analysis.TotalMargin(current), analysis.TotalMargin(prior)),
		ActiveCustomers: analysis.Compare(
			float64(analysis.DistinctCustomers(current)),
			float64(analysis.DistinctCustomers(prior))),
		Orders: analysis.Compare(
			float64(analysis.DistinctOrders(current)),
			float64(analysis.DistinctOrders(prior))),

		Insights: insights.Generator{}.Generate(current, prior, describeFilters(sel)),

		Daily:       analysis.SummarizeDaily(current),
		ByRegion:    analysis.SummarizeByRegion(current),
		ByChannel:   analysis.SummarizeByChannel(current),
		TopProducts: analysis.SummarizeProducts(current, s.cfg.TopProducts),
	}

	if days := len(dashboard.Daily); days > 0 && days < s.cfg.MinHistoryDays {
		log.Warn().
			Int("days", days).
			Int("min_days", s.cfg.MinHistoryDays).
			Msg("forecast history below the recommended minimum")
	}

	result, err := forecast.Forecaster{}.Forecast(current, horizon)
	if err != nil {
		if !errors.Is(err, forecast.ErrNoData) {
			log.Warn().Err(err).Msg("forecast failed")
		}
	} else {
		dashboard.Forecast = result
	}

	return dashboard
}

// Options lists the filterable values of the loaded dataset.
func (s *DashboardService) Options(ctx context.Context) (domain.FilterOptions, error) {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	if records == nil {
		return domain.FilterOptions{}, ErrNoDataset
	}
	return analysis.Options(records), nil
}

// CleaningReport reports what the cleaner changed on the last load.
func (s *DashboardService) CleaningReport() domain.CleaningReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cleaning
}

// LoadWarnings returns the non-blocking validation warnings of the last
// load.
func (s *DashboardService) LoadWarnings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warnings
}

func (s *DashboardService) clampHorizon(horizon int) int {
	if horizon <= 0 {
		horizon = s.cfg.ForecastDays
	}
	if s.cfg.ForecastMinDays > 0 && horizon < s.cfg.ForecastMinDays {
		horizon = s.cfg.ForecastMinDays
	}
	if s.cfg.ForecastMaxDays > 0 && horizon > s.cfg.ForecastMaxDays {
		horizon = s.cfg.ForecastMaxDays
	}
	return horizon
}

func describeFilters(sel domain.Selection) string {
	var parts []string
	if sel.Region != "" {
		parts = append(parts, "Region: "+sel.Region)
	}
	if sel.Channel != "" {
		parts = append(parts, "Channel: "+sel.Channel)
	}
	if sel.ProductID != "" {
		parts = append(parts, "Product: "+sel.ProductID)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func fingerprintTable(t *domain.RawTable) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s\n", strings.Join(t.Columns, "\x1f"))
	for _, row := range t.Rows {
		fmt.Fprintf(h, "%s\n", strings.Join(row, "\x1f"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
