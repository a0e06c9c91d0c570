package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/companyhq/company-api/internal/core/domain"
)

// RBAC gates a route on a fixed allowed-role set. Must run after
// Authenticate: a request with no identity attached gets 401 (the
// authentication requirement was never satisfied), a wrong role gets 403.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(IdentityKey).(domain.Identity)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[identity.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
