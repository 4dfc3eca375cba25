package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

// AuthService implements signup and signin.
type AuthService struct {
	repo        ports.AccountRepository
	credentials ports.CredentialService
	log         zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, credentials ports.CredentialService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, credentials: credentials, log: log}
}

// Signup registers a USER account and returns a session token for it.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.credentials.HashPassword(ctx, in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	token, err := s.credentials.IssueToken(account)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("account created")
	return &ports.AuthResult{Token: token, Account: account}, nil
}

// Signin checks the credentials and returns a fresh session token. Unknown
// emails and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.credentials.VerifyPassword(ctx, password, account.PasswordHash) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.credentials.IssueToken(account)
	if err != nil {
		return nil, fmt.Errorf("signin: %w", err)
	}
	return &ports.AuthResult{Token: token, Account: account}, nil
}
