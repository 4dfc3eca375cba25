package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/letsgrowesports/blog-api/internal/api/metrics"
	"github.com/letsgrowesports/blog-api/internal/core/domain"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

// IdentityKey is the echo context key holding the verified domain.Identity.
const IdentityKey = "user"

type identityCtxKey struct{}

// rejection is the body sent when access control stops a request.
type rejection struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Authenticator adapts an access controller to echo routes.
type Authenticator struct {
	controller ports.AccessController
}

func NewAuthenticator(controller ports.AccessController) *Authenticator {
	return &Authenticator{controller: controller}
}

// RequireSignedIn admits any request carrying a valid session token.
func (a *Authenticator) RequireSignedIn() echo.MiddlewareFunc {
	return a.guard(ports.PolicySignedIn)
}

// guard runs the access checks for policy and, on success, attaches the
// caller's identity before handing over to next.
func (a *Authenticator) guard(policy ports.AccessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			out := a.controller.Authorize(ports.AccessRequest{
				Authorization: c.Request().Header.Get(echo.HeaderAuthorization),
			}, policy)
			if !out.Allowed() {
				metrics.AuthRejectionsTotal.WithLabelValues(policy.String(), out.Reason).Inc()
				return c.JSON(out.Status, rejection{Success: false, Message: out.Message})
			}

			setIdentity(c, *out.Identity)
			return next(c)
		}
	}
}

func setIdentity(c echo.Context, id domain.Identity) {
	c.Set(IdentityKey, id)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), identityCtxKey{}, id)))
}

// IdentityFrom returns the identity attached by the auth middleware.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(IdentityKey).(domain.Identity)
	return id, ok
}

// IdentityFromContext returns the identity stored in a request context.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return id, ok
}
