package ports

import (
	"context"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
)

// SignupInput carries the fields accepted at signup.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by a successful signup or signin.
type AuthResult struct {
	Token   string
	Account *domain.Account
}

// AuthService implements the account entry points.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Signin(ctx context.Context, email, password string) (*AuthResult, error)
}
