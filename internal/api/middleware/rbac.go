package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medconnect/appointments/internal/core/domain"
	"github.com/medconnect/appointments/internal/core/ports"
)

// RBAC enforces role-based access control against the caller's profile.
// It must run after RequireAuth.
func RBAC(profiles ports.ProfileRepository, logger zerolog.Logger, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := domain.PrincipalFromContext(c.Request().Context())
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			profile, err := profiles.FindProfile(c.Request().Context(), principal.ID)
			if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
				logger.Error().Err(err).Str("user_id", principal.ID).Msg("profile lookup failed")
			}
			if err != nil || profile == nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if _, ok := allowed[profile.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
