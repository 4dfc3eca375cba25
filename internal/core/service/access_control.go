package service

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

// Rejection messages returned to clients. They are part of the public contract.
const (
	MsgHeaderMissing  = "Authorization header is missing"
	MsgInvalidFormat  = "Invalid token format. Must start with 'Bearer '"
	MsgTokenMissing   = "Token is missing"
	MsgTokenExpired   = "Token has expired"
	MsgInvalidToken   = "Invalid token"
	MsgAuthFailed     = "Authentication failed"
	MsgInvalidPayload = "Invalid token payload"
	MsgAdminsOnly     = "Access denied: Admins only"
)

// AccessControl runs the ordered authentication and authorization checks for
// protected routes. The first failing check decides the outcome.
type AccessControl struct {
	verifier ports.TokenVerifier
	log      zerolog.Logger
}

func NewAccessControl(verifier ports.TokenVerifier, log zerolog.Logger) *AccessControl {
	return &AccessControl{verifier: verifier, log: log}
}

// Authorize evaluates req against policy.
func (a *AccessControl) Authorize(req ports.AccessRequest, policy ports.AccessPolicy) ports.AccessOutcome {
	header := req.Authorization
	if header == "" {
		return reject(http.StatusUnauthorized, MsgHeaderMissing, "header_missing")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return reject(http.StatusUnauthorized, MsgInvalidFormat, "invalid_format")
	}
	token, _, _ := strings.Cut(strings.TrimPrefix(header, bearerPrefix), " ")
	if token == "" {
		return reject(http.StatusUnauthorized, MsgTokenMissing, "token_missing")
	}

	session, err := a.verifier.VerifyToken(token)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrTokenPayload):
		return reject(http.StatusUnauthorized, MsgInvalidPayload, "invalid_payload")
	case errors.Is(err, domain.ErrTokenExpired):
		return reject(http.StatusUnauthorized, MsgTokenExpired, "token_expired")
	case errors.Is(err, domain.ErrTokenMalformed):
		return reject(http.StatusUnauthorized, MsgInvalidToken, "invalid_token")
	default:
		a.log.Error().Err(err).Str("policy", policy.String()).Msg("token verification failed")
		return reject(http.StatusInternalServerError, MsgAuthFailed, "internal")
	}

	if session == nil || session.ID == "" || session.Role == "" {
		return reject(http.StatusUnauthorized, MsgInvalidPayload, "invalid_payload")
	}

	if policy == ports.PolicyAdminOnly && session.Role != domain.RoleAdmin {
		return reject(http.StatusForbidden, MsgAdminsOnly, "forbidden")
	}

	identity := session.Identity
	return ports.AccessOutcome{Identity: &identity, Status: http.StatusOK}
}

func reject(status int, message, reason string) ports.AccessOutcome {
	return ports.AccessOutcome{Status: status, Message: message, Reason: reason}
}
