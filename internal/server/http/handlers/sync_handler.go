package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/validation"
)

const defaultWaitTimeout = 25 * time.Second

// SyncHandler exposes refresh and synchronisation state.
type SyncHandler struct {
	facade   DashboardFacade
	validate *validatorv10.Validate
}

// NewSyncHandler constructs SyncHandler.
func NewSyncHandler(facade DashboardFacade, v *validatorv10.Validate) *SyncHandler {
	return &SyncHandler{facade: facade, validate: v}
}

// Refresh handles POST /api/refresh.
func (h *SyncHandler) Refresh(c *gin.Context) {
	st, err := h.facade.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, toStatusResponse(st))
		return
	}
	c.JSON(http.StatusOK, toStatusResponse(st))
}

// Status handles GET /api/status.
func (h *SyncHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, toStatusResponse(h.facade.SyncStatus()))
}

// Wait handles GET /api/status/wait. It answers as soon as a snapshot newer than
// since is published, or with updated=false once the timeout elapses.
func (h *SyncHandler) Wait(c *gin.Context) {
	var in dto.WaitQuery
	if err := validation.BindQuery(c, &in, h.validate); err != nil {
		return
	}
	timeout := defaultWaitTimeout
	if in.Timeout > 0 {
		timeout = time.Duration(in.Timeout) * time.Second
	}

	st, updated, err := h.facade.WaitForUpdate(c.Request.Context(), in.Since, timeout)
	if err != nil {
		c.Status(http.StatusRequestTimeout)
		return
	}
	resp := toStatusResponse(st)
	resp.Updated = &updated
	c.JSON(http.StatusOK, resp)
}
