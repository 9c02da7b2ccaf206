package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/paymentqa-dashboard/internal/adapter/backend"
	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/middleware"
)

// CurrentOperatorID returns the authenticated operator, or 0 outside AuthRequired.
func CurrentOperatorID(c *gin.Context) int64 {
	id, _ := middleware.OperatorID(c)
	return id
}

// writeError maps domain and backend errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainErrors.ErrNotLoaded):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrInvalidFilter),
		errors.Is(err, domainErrors.ErrEmptySelection):
		status = http.StatusBadRequest
	case errors.Is(err, backend.ErrUnavailable):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
