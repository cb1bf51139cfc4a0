package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextKeyIdentity = "identity"
	ContextKeyUserID   = "user_id"
	ContextKeyRole     = "role"
)

// TokenValidator verifies a bearer token and yields the caller's identity.
type TokenValidator interface {
	ValidateToken(token string) (*domain.Identity, error)
}

// Auth validates the bearer token and injects the identity into context.
func Auth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := validator.ValidateToken(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextKeyIdentity, identity)
			c.Set(ContextKeyUserID, identity.UserID)
			c.Set(ContextKeyRole, identity.Role)

			return next(c)
		}
	}
}
