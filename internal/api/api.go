package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/api/handlers"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/api/middleware"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/service"
)

type Services struct {
	Dashboard *service.DashboardService
}

type RouterConfig struct {
	AllowedOrigins []string
	UploadDir      string
}

func NewRouter(services *Services, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(cfg.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.Dashboard != nil {
		dashboardHandler := handlers.NewDashboardHandler(services.Dashboard, cfg.UploadDir)
		salesGroup := apiGroup.Group("/sales")
		{
			salesGroup.GET("/dashboard", dashboardHandler.GetDashboard)
			salesGroup.GET("/insights", dashboardHandler.GetInsights)
			salesGroup.GET("/forecast", dashboardHandler.GetForecast)
			salesGroup.GET("/options", dashboardHandler.GetOptions)
			salesGroup.POST("/upload", dashboardHandler.UploadCSV)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
