package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/validation"
)

// OrderHandler serves the order list and the order page.
type OrderHandler struct {
	facade   AdminFacade
	validate *validatorv10.Validate
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade AdminFacade, v *validatorv10.Validate) *OrderHandler {
	return &OrderHandler{facade: facade, validate: v}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	var in dto.OrderListQuery
	if err := validation.BindQuery(c, &in, h.validate); err != nil {
		return
	}

	prefs, err := h.facade.Preferences(c.Request.Context(), CurrentOperatorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	q, err := buildOrderQuery(in, prefs, h.facade.Location())
	if err != nil {
		writeError(c, err)
		return
	}

	list, err := h.facade.Orders(q)
	if err != nil {
		writeError(c, err)
		return
	}
	countries, err := h.facade.Countries()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderListResponse(list, q, h.facade.Formatter(), countries, h.facade.SyncStatus()))
}

// Detail handles GET /api/orders/:id.
func (h *OrderHandler) Detail(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	detail, err := h.facade.OrderDetail(id)
	if err != nil {
		writeError(c, err)
		return
	}
	countries, err := h.facade.Countries()
	if err != nil {
		writeError(c, err)
		return
	}
	resp := toDetailResponse(detail, h.facade.Formatter(), countries)
	resp.Freshness = freshness(h.facade.SyncStatus())
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if err := validation.BindJSON(c, &req, h.validate); err != nil {
		return
	}

	result, err := h.facade.UpdateStatuses(c.Request.Context(), []int64{id}, model.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	switch {
	case len(result.Missing) > 0:
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case len(result.Failed) > 0:
		c.JSON(http.StatusBadGateway, gin.H{"error": result.Failed[0].Reason})
	default:
		c.JSON(http.StatusOK, toBulkResponse(result))
	}
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return id, true
}
