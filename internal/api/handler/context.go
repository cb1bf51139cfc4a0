package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ostrich-systems/field-service-api/internal/api/middleware"
	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware. Its
// presence proves the middleware ran; a handler reached without it is a
// routing mistake, rejected with 401 rather than a panic downstream.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(middleware.ContextKeyIdentity).(*domain.Identity)
	if identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
