package drive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/config"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/etl"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/repository"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/schema"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/source"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/storage"
)

// IngestService pulls a sales CSV from Drive, runs it through the
// normalization and cleaning pipeline and lands the rows in Postgres.
// The raw file is archived to object storage when a store is configured.
type IngestService struct {
	driveService *Service
	repo         *repository.SalesRepository
	archive      storage.ObjectStorage
	cfg          config.DataConfig
}

func NewIngestService(driveService *Service, repo *repository.SalesRepository, archive storage.ObjectStorage, cfg config.DataConfig) *IngestService {
	return &IngestService{
		driveService: driveService,
		repo:         repo,
		archive:      archive,
		cfg:          cfg,
	}
}

// IngestFile downloads one Drive file by ID and loads it.
func (s *IngestService) IngestFile(ctx context.Context, fileID, name string) error {
	var buf bytes.Buffer
	if err := s.driveService.DownloadFile(ctx, fileID, &buf); err != nil {
		return fmt.Errorf("download %s: %w", fileID, err)
	}

	data := buf.Bytes()

	loader := source.NewLoader(
		source.NewBytesSource(name, data),
		schema.DefaultSchema(),
		schema.ValidatorConfig{MaxRows: s.cfg.MaxRows, DateFormat: s.cfg.DateFormat},
	)
	table, warnings, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn().Str("file", name).Msg(w)
	}

	cleaner := etl.Cleaner{DateFormat: s.cfg.DateFormat}
	records, report := cleaner.Clean(table)
	if report.RowsRemoved > 0 {
		log.Warn().Str("file", name).Int("rows_removed", report.RowsRemoved).Msg("rows dropped during cleaning")
	}

	if err := s.repo.InsertRecords(ctx, records); err != nil {
		return fmt.Errorf("load %s into database: %w", name, err)
	}

	if s.archive != nil {
		if err := s.archive.PutObject(ctx, "raw/"+name, data); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("failed to archive raw file")
		}
	}

	log.Info().Str("file", name).Int("rows", len(records)).Msg("file ingested")
	return nil
}

// IngestFolder ingests every CSV of a Drive folder, newest first.
func (s *IngestService) IngestFolder(ctx context.Context, folderPath string) (int, error) {
	folderID, err := s.driveService.FindFolderByPath(ctx, folderPath)
	if err != nil {
		return 0, err
	}

	files, err := s.driveService.ListCSVFiles(ctx, folderID)
	if err != nil {
		return 0, err
	}

	ingested := 0
	for _, f := range files {
		if err := s.IngestFile(ctx, f.ID, f.Name); err != nil {
			return ingested, fmt.Errorf("ingest %s: %w", f.Name, err)
		}
		ingested++
	}
	return ingested, nil
}
