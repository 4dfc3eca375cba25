package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

// RequireAdmin admits only requests whose valid session token carries the
// ADMIN role. Authentication failures are reported before the role check.
func (a *Authenticator) RequireAdmin() echo.MiddlewareFunc {
	return a.guard(ports.PolicyAdminOnly)
}
