package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/validation"
)

// PreferencesHandler reads and stores operator view settings.
type PreferencesHandler struct {
	facade   AdminFacade
	validate *validatorv10.Validate
}

// NewPreferencesHandler constructs PreferencesHandler.
func NewPreferencesHandler(facade AdminFacade, v *validatorv10.Validate) *PreferencesHandler {
	return &PreferencesHandler{facade: facade, validate: v}
}

// Get handles GET /api/preferences.
func (h *PreferencesHandler) Get(c *gin.Context) {
	prefs, err := h.facade.Preferences(c.Request.Context(), CurrentOperatorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

// Put handles PUT /api/preferences. Omitted fields keep their saved value.
func (h *PreferencesHandler) Put(c *gin.Context) {
	var req dto.PreferencesRequest
	if err := validation.BindJSON(c, &req, h.validate); err != nil {
		return
	}

	operatorID := CurrentOperatorID(c)
	prefs, err := h.facade.Preferences(c.Request.Context(), operatorID)
	if err != nil {
		writeError(c, err)
		return
	}
	if req.Filters != nil {
		prefs.Filters = *req.Filters
	}
	if req.PageSize != 0 {
		prefs.PageSize = req.PageSize
	}
	if req.MetricsRange != "" {
		w, err := model.ParseDateWindow(req.MetricsRange, h.facade.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		prefs.MetricsWindow = w
	}
	prefs.OperatorID = operatorID

	saved, err := h.facade.SavePreferences(c.Request.Context(), prefs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreferencesResponse(saved))
}

// Delete handles DELETE /api/preferences.
func (h *PreferencesHandler) Delete(c *gin.Context) {
	if err := h.facade.ResetPreferences(c.Request.Context(), CurrentOperatorID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
