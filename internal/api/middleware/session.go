package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/appointments/internal/core/domain"
	"github.com/medconnect/appointments/internal/pkg/session"
)

// Session identifies the caller from the bearer token or the session cookie.
// Requests without a valid token continue anonymously.
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				if cookie, err := c.Cookie(session.CookieName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				return next(c)
			}

			principal, err := session.Parse(secret, token)
			if err != nil {
				return next(c)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithPrincipal(req.Context(), principal)))
			return next(c)
		}
	}
}

// RequireAuth rejects requests that Session left anonymous.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := domain.PrincipalFromContext(c.Request().Context()); !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}

// ContextPrincipalResolver reads the principal that Session stored on the
// request context.
type ContextPrincipalResolver struct{}

func (ContextPrincipalResolver) CurrentPrincipal(ctx context.Context) (domain.Principal, bool) {
	return domain.PrincipalFromContext(ctx)
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
