package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/service"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/source"
)

const queryDateLayout = "2006-01-02"

type DashboardHandler struct {
	service   *service.DashboardService
	uploadDir string
}

func NewDashboardHandler(svc *service.DashboardService, uploadDir string) *DashboardHandler {
	return &DashboardHandler{service: svc, uploadDir: uploadDir}
}

// parseSelection reads start/end/region/channel/product from the query
// string. Missing dates fall back to the bounds of the loaded dataset.
func (h *DashboardHandler) parseSelection(c *gin.Context) (domain.Selection, error) {
	var sel domain.Selection

	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		return sel, err
	}
	sel.Start = options.MinDate
	sel.End = options.MaxDate

	if raw := strings.TrimSpace(c.Query("start")); raw != "" {
		start, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return sel, errors.New("invalid start date, expected YYYY-MM-DD")
		}
		sel.Start = start
	}
	if raw := strings.TrimSpace(c.Query("end")); raw != "" {
		end, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return sel, errors.New("invalid end date, expected YYYY-MM-DD")
		}
		sel.End = end
	}

	sel.Region = strings.TrimSpace(c.Query("region"))
	sel.Channel = strings.TrimSpace(c.Query("channel"))
	sel.ProductID = strings.TrimSpace(c.Query("product"))
	return sel, nil
}

func (h *DashboardHandler) parseHorizon(c *gin.Context) int {
	if days, err := strconv.Atoi(c.DefaultQuery("days", "0")); err == nil && days > 0 {
		return days
	}
	return 0
}

// GetDashboard returns the full dashboard for the selection
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	sel, err := h.parseSelection(c)
	if err != nil {
		h.selectionError(c, err)
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), sel, h.parseHorizon(c))
	if err != nil {
		h.selectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetInsights returns only the insight list for the selection
func (h *DashboardHandler) GetInsights(c *gin.Context) {
	sel, err := h.parseSelection(c)
	if err != nil {
		h.selectionError(c, err)
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), sel, 0)
	if err != nil {
		h.selectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": dashboard.Insights})
}

// GetForecast returns the historical series plus the projection
func (h *DashboardHandler) GetForecast(c *gin.Context) {
	sel, err := h.parseSelection(c)
	if err != nil {
		h.selectionError(c, err)
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), sel, h.parseHorizon(c))
	if err != nil {
		h.selectionError(c, err)
		return
	}

	if dashboard.Forecast == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sales in the selected period"})
		return
	}
	c.JSON(http.StatusOK, dashboard.Forecast)
}

// GetOptions returns the filterable values of the loaded dataset
func (h *DashboardHandler) GetOptions(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		h.selectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// UploadCSV replaces the working dataset with an uploaded CSV file
func (h *DashboardHandler) UploadCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	filePath := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return
	}

	if err := h.service.LoadFrom(c.Request.Context(), source.NewCSVSource(filePath)); err != nil {
		var schemaErr *source.SchemaValidationError
		if errors.As(err, &schemaErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": schemaErr.Errors})
			return
		}
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to load uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := h.service.CleaningReport()
	c.JSON(http.StatusOK, gin.H{
		"message":  "dataset loaded",
		"cleaning": report,
		"warnings": h.service.LoadWarnings(),
	})
}

func (h *DashboardHandler) selectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoDataset):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
