package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/validation"
)

// BulkHandler applies one edit to many selected orders.
type BulkHandler struct {
	facade   BulkFacade
	validate *validatorv10.Validate
}

// NewBulkHandler constructs BulkHandler.
func NewBulkHandler(facade BulkFacade, v *validatorv10.Validate) *BulkHandler {
	return &BulkHandler{facade: facade, validate: v}
}

// Status handles POST /api/orders/bulk/status.
func (h *BulkHandler) Status(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := validation.BindJSON(c, &req, h.validate); err != nil {
		return
	}
	result, err := h.facade.UpdateStatuses(c.Request.Context(), req.IDs, model.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBulkResponse(result))
}

// Tester handles POST /api/orders/bulk/tester.
func (h *BulkHandler) Tester(c *gin.Context) {
	var req dto.BulkTesterRequest
	if err := validation.BindJSON(c, &req, h.validate); err != nil {
		return
	}
	filter, err := model.ParseTesterFilter(req.Tester)
	if err != nil || filter.Mode == model.TesterAny {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "fields": gin.H{"Tester": "tester"}})
		return
	}

	var testerID *int64
	if filter.Mode == model.TesterID {
		testerID = &filter.ID
	}
	result, err := h.facade.AssignTester(c.Request.Context(), req.IDs, testerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBulkResponse(result))
}

// Delete handles POST /api/orders/bulk/delete.
func (h *BulkHandler) Delete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := validation.BindJSON(c, &req, h.validate); err != nil {
		return
	}
	result, err := h.facade.DeleteOrders(c.Request.Context(), req.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBulkResponse(result))
}
