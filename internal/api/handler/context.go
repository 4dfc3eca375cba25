package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letsgrowesports/blog-api/internal/api/middleware"
	"github.com/letsgrowesports/blog-api/internal/core/domain"
)

// currentIdentity returns the caller attached by the auth middleware. A route
// mounted without that middleware fails fast with 401.
func currentIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.ID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
