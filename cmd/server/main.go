package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/api"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/cache"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/config"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/service"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/source"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/storage"
	"github.com/andresuchdata/ventas-bi/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetModeLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	dashboardCache := cache.NewNoopDashboardCache()
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewDashboardCache(cfg.Cache)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without dashboard cache")
		} else {
			dashboardCache = redisCache
		}
	}

	dashboardService := service.NewDashboardService(cfg.Data, dashboardCache)

	if err := loadInitialDataset(cfg, dashboardService); err != nil {
		log.Warn().Err(err).Msg("no dataset loaded at startup, waiting for an upload")
	}

	router := api.NewRouter(&api.Services{Dashboard: dashboardService}, api.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		UploadDir:      cfg.Data.UploadDir,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

func loadInitialDataset(cfg *config.Config, svc *service.DashboardService) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch cfg.Data.Source {
	case "postgres":
		db, err := source.NewDB("pgx", cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer db.Close()
		return svc.LoadFrom(ctx, source.NewPostgresSource(db))
	case "storage":
		store, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return err
		}
		return svc.LoadFrom(ctx, source.NewObjectSource(store, cfg.Storage.ObjectKey))
	}

	if _, err := os.Stat(cfg.Data.DefaultCSVPath); err != nil {
		return err
	}
	return svc.LoadFrom(ctx, source.NewCSVSource(cfg.Data.DefaultCSVPath))
}
