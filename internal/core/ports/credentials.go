package ports

import (
	"context"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
)

// PasswordHasher performs the one-way password transformation.
type PasswordHasher interface {
	HashPassword(ctx context.Context, plaintext string) (string, error)
	VerifyPassword(ctx context.Context, plaintext, digest string) bool
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	IssueToken(account *domain.Account) (string, error)
}

// TokenVerifier checks a session token. Expected failures are reported as
// domain.ErrTokenExpired or domain.ErrTokenMalformed (possibly wrapped);
// any other error is an unexpected fault.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Session, error)
}

// CredentialService groups password and token handling.
type CredentialService interface {
	PasswordHasher
	TokenIssuer
	TokenVerifier
}

// Runner executes fn off the caller's goroutine and waits for it, or for ctx.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}
