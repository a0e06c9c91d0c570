package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/companyhq/company-api/internal/api/middleware"
	"github.com/companyhq/company-api/internal/core/domain"
)

// ctxIdentity extracts the identity attached by the Authenticate middleware.
// Its absence means the route was registered without the middleware; that is
// a wiring bug, surfaced as 401 rather than a nil-dereference panic.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
