package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/config"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/service"
	"github.com/andresuchdata/ventas-bi/backend-go/internal/source"
)

const testCSV = "date,order_id,customer_id,product_id,quantity,price,cost,region,channel\n" +
	"2025-01-01,O1,C1,P1,1,10,4,Norte,Online\n" +
	"2025-01-02,O2,C2,P2,2,15,5,Sur,Tienda\n"

func newTestRouter(t *testing.T, loaded bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DataConfig{
		MaxRows:         100,
		TopProducts:     5,
		ForecastMinDays: 1,
		ForecastMaxDays: 90,
		ForecastDays:    7,
		MinHistoryDays:  1,
	}
	svc := service.NewDashboardService(cfg, nil)
	if loaded {
		err := svc.LoadFrom(context.Background(), source.NewBytesSource("sales.csv", []byte(testCSV)))
		require.NoError(t, err)
	}

	h := NewDashboardHandler(svc, t.TempDir())
	router := gin.New()
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/insights", h.GetInsights)
	router.GET("/forecast", h.GetForecast)
	router.GET("/options", h.GetOptions)
	return router
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetDashboardDefaultsToFullRange(t *testing.T) {
	router := newTestRouter(t, true)

	w := doGet(router, "/dashboard")
	require.Equal(t, http.StatusOK, w.Code)

	var d domain.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Len(t, d.Current, 2)
	assert.InDelta(t, 40, d.Revenue.Current, 1e-9)
}

func TestGetDashboardWithFilters(t *testing.T) {
	router := newTestRouter(t, true)

	w := doGet(router, "/dashboard?start=2025-01-01&end=2025-01-01&region=Norte")
	require.Equal(t, http.StatusOK, w.Code)

	var d domain.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	require.Len(t, d.Current, 1)
	assert.Equal(t, "O1", d.Current[0].OrderID)
}

func TestGetDashboardBadDate(t *testing.T) {
	router := newTestRouter(t, true)

	w := doGet(router, "/dashboard?start=01-01-2025")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid start date")
}

func TestGetDashboardWithoutDataset(t *testing.T) {
	router := newTestRouter(t, false)

	w := doGet(router, "/dashboard")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOptions(t *testing.T) {
	router := newTestRouter(t, true)

	w := doGet(router, "/options")
	require.Equal(t, http.StatusOK, w.Code)

	var opts domain.FilterOptions
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Equal(t, []string{"Norte", "Sur"}, opts.Regions)
}

func TestGetForecast(t *testing.T) {
	router := newTestRouter(t, true)

	w := doGet(router, "/forecast?days=3")
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.ForecastResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Points, 2+3)
}
