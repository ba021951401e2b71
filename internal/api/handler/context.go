package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/appointments/internal/core/domain"
)

// ctxPrincipal returns the principal injected by the Session middleware. It
// is a fast-fail check for routes that sit behind RequireAuth.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := domain.PrincipalFromContext(c.Request().Context())
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return p, nil
}
