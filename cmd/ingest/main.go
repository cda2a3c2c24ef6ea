package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/config"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/drive"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/repository"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/source"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/storage"
	"github.com/andresuchdata/ventas-bi/backend-go/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.SetModeLevel(cfg.Server.Mode)

	driveService, err := drive.NewService(context.Background(), cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Google Drive service")
	}

	db, err := source.NewDB("pgx", cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	var archive storage.ObjectStorage
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("object storage unavailable, raw files will not be archived")
		} else {
			archive = minioClient
		}
	}

	salesRepo := repository.NewSalesRepository(db)
	ingestService := drive.NewIngestService(driveService, salesRepo, archive, cfg.Data)

	r := mux.NewRouter()

	driveHandler := drive.NewHandler(driveService, ingestService, cfg.Drive.FolderPath)
	driveHandler.RegisterRoutes(r)

	if archive != nil {
		r.HandleFunc("/api/storage/files", listArchivedFiles(archive)).Methods("GET")
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("Ingest server starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("Ingest server stopped")
	}
}

func listArchivedFiles(archive storage.ObjectStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objects, err := archive.ListObjects(r.Context(), "raw/")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(objects)
	}
}
