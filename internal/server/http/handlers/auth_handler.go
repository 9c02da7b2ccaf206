package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/middleware"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/validation"
)

// AuthHandler processes operator login.
type AuthHandler struct {
	facade   AuthFacade
	validate *validatorv10.Validate
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, v *validatorv10.Validate) *AuthHandler {
	return &AuthHandler{facade: facade, validate: v}
}

// Login handles POST /api/operator/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := validation.BindJSON(c, &req, h.validate); err != nil {
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.Status(http.StatusOK)
}

// Logout handles POST /api/operator/logout. Tokens are stateless, so only the cookie is dropped.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusNoContent)
}
