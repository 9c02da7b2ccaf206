package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/validation"
)

// MetricsHandler serves the metric cards and the charts.
type MetricsHandler struct {
	facade   AdminFacade
	validate *validatorv10.Validate
}

// NewMetricsHandler constructs MetricsHandler.
func NewMetricsHandler(facade AdminFacade, v *validatorv10.Validate) *MetricsHandler {
	return &MetricsHandler{facade: facade, validate: v}
}

func (h *MetricsHandler) window(c *gin.Context) (model.DateWindow, bool) {
	var in dto.MetricsQuery
	if err := validation.BindQuery(c, &in, h.validate); err != nil {
		return model.DateWindow{}, false
	}
	prefs, err := h.facade.Preferences(c.Request.Context(), CurrentOperatorID(c))
	if err != nil {
		writeError(c, err)
		return model.DateWindow{}, false
	}
	w, err := metricsWindow(in, prefs, h.facade.Location())
	if err != nil {
		writeError(c, err)
		return model.DateWindow{}, false
	}
	return w, true
}

// Metrics handles GET /api/metrics.
func (h *MetricsHandler) Metrics(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}
	metrics, err := h.facade.Metrics(w)
	if err != nil {
		writeError(c, err)
		return
	}
	from, to := w.Bounds(h.facade.Now())
	c.JSON(http.StatusOK, dto.MetricsResponse{
		Range:     w.String(),
		From:      from,
		To:        to,
		Metrics:   toMetricResponses(metrics, h.facade.Formatter()),
		Freshness: freshness(h.facade.SyncStatus()),
	})
}

// Revenue handles GET /api/charts/revenue.
func (h *MetricsHandler) Revenue(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}
	points, err := h.facade.RevenueChart(w)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RevenueChartResponse{
		Range:     w.String(),
		Points:    toRevenueResponses(points),
		Freshness: freshness(h.facade.SyncStatus()),
	})
}

// Status handles GET /api/charts/status.
func (h *MetricsHandler) Status(c *gin.Context) {
	h.distribution(c, h.facade.StatusChart)
}

// Geo handles GET /api/charts/geo.
func (h *MetricsHandler) Geo(c *gin.Context) {
	h.distribution(c, h.facade.GeoChart)
}

// Packages handles GET /api/charts/packages.
func (h *MetricsHandler) Packages(c *gin.Context) {
	h.distribution(c, h.facade.PackageChart)
}

func (h *MetricsHandler) distribution(c *gin.Context, build func() ([]analytics.Slice, error)) {
	slices, err := build()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DistributionResponse{
		Slices:    toSliceResponses(slices),
		Freshness: freshness(h.facade.SyncStatus()),
	})
}
