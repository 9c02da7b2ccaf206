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

// ActivityHandler serves the activity feed and reference data.
type ActivityHandler struct {
	facade   DashboardFacade
	validate *validatorv10.Validate
}

// NewActivityHandler constructs ActivityHandler.
func NewActivityHandler(facade DashboardFacade, v *validatorv10.Validate) *ActivityHandler {
	return &ActivityHandler{facade: facade, validate: v}
}

// Feed handles GET /api/activity.
func (h *ActivityHandler) Feed(c *gin.Context) {
	var in dto.ActivityQuery
	if err := validation.BindQuery(c, &in, h.validate); err != nil {
		return
	}
	events, err := h.facade.Activity(analytics.ActivityQuery{
		Type:  model.EventType(in.Type),
		Query: in.Q,
		Limit: in.Limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ActivityFeedResponse{
		Events:    toActivityResponses(events, h.facade.Formatter()),
		Freshness: freshness(h.facade.SyncStatus()),
	})
}

// Testers handles GET /api/testers.
func (h *ActivityHandler) Testers(c *gin.Context) {
	testers, err := h.facade.Testers()
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.TesterResponse, 0, len(testers))
	for _, t := range testers {
		resp = append(resp, toTesterResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// Countries handles GET /api/countries.
func (h *ActivityHandler) Countries(c *gin.Context) {
	countries, err := h.facade.Countries()
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make(map[string]dto.CountryResponse, len(countries))
	for code, country := range countries {
		resp[code] = dto.CountryResponse{Name: country.Name, Flag: country.Flag}
	}
	c.JSON(http.StatusOK, resp)
}
