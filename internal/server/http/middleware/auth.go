package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/paymentqa-dashboard/internal/pkg/auth"
)

const (
	// OperatorIDContextKey is a gin context key for the authenticated operator identifier.
	OperatorIDContextKey = "operatorID"
	authCookieName       = "dashboard_token"
	bearerPrefix         = "bearer "
)

// TokenParser resolves an auth token into an operator id.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// AuthRequired rejects requests without a valid token with 401. The Authorization
// header wins over the cookie when both are present.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requestToken(c.Request)
		if !ok {
			abortUnauthorized(c)
			return
		}

		operatorID, err := parser.ParseToken(token)
		switch {
		case errors.Is(err, pkgAuth.ErrInvalidToken):
			abortUnauthorized(c)
			return
		case err != nil:
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token check failed"})
			return
		}

		c.Set(OperatorIDContextKey, operatorID)
		c.Next()
	}
}

// OperatorID returns the id stored by AuthRequired.
func OperatorID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(OperatorIDContextKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func requestToken(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); len(header) > len(bearerPrefix) &&
		strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		token := strings.TrimSpace(header[len(bearerPrefix):])
		return token, token != ""
	}
	cookie, err := r.Cookie(authCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// SetAuthCookie hands the token back both as an HttpOnly cookie and as a header.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearAuthCookie expires the auth cookie in the browser.
func ClearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
}
