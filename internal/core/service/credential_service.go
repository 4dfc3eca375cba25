package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

const (
	// PasswordCost is the bcrypt work factor applied to every digest.
	PasswordCost = 10
	// SessionTTL is the fixed lifetime of a session token.
	SessionTTL = 24 * time.Hour
)

var errSecretMissing = errors.New("credential: signing secret is not configured")

// CredentialConfig is the process-wide configuration of the credential service.
// Secret is read-only once the service is built.
type CredentialConfig struct {
	Secret []byte
	// Runner executes bcrypt work; nil runs it on the calling goroutine.
	Runner ports.Runner
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// sessionClaims is the JWT payload: {id, name, email, role, iat, exp}.
type sessionClaims struct {
	UserID string      `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// CredentialService hashes passwords and signs and verifies session tokens.
type CredentialService struct {
	secret []byte
	runner ports.Runner
	now    func() time.Time
}

func NewCredentialService(cfg CredentialConfig) *CredentialService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &CredentialService{secret: secret, runner: cfg.Runner, now: now}
}

// HashPassword returns a salted bcrypt digest of plaintext.
func (s *CredentialService) HashPassword(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("hash password: %w", domain.ErrInvalidInput)
	}

	var (
		digest  []byte
		hashErr error
	)
	if err := s.run(ctx, func() {
		digest, hashErr = bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	}); err != nil {
		return "", err
	}
	if hashErr != nil {
		return "", fmt.Errorf("hash password: %w", hashErr)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches digest. A malformed digest,
// a mismatch or a cancelled context all yield false.
func (s *CredentialService) VerifyPassword(ctx context.Context, plaintext, digest string) bool {
	if digest == "" {
		return false
	}

	var cmpErr error
	if err := s.run(ctx, func() {
		cmpErr = bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	}); err != nil {
		return false
	}
	return cmpErr == nil
}

// IssueToken signs a session token for account, valid for SessionTTL.
func (s *CredentialService) IssueToken(account *domain.Account) (string, error) {
	if account == nil || account.ID == "" || account.Role == "" {
		return "", fmt.Errorf("issue token: %w", domain.ErrInvalidInput)
	}
	if len(s.secret) == 0 {
		return "", errSecretMissing
	}

	now := s.now().UTC()
	claims := sessionClaims{
		UserID: account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature and expiry of token and decodes its payload.
func (s *CredentialService) VerifyToken(token string) (*domain.Session, error) {
	if len(s.secret) == 0 {
		return nil, errSecretMissing
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	default:
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}

	if claims.UserID == "" || claims.Role == "" {
		return nil, domain.ErrTokenPayload
	}

	session := &domain.Session{
		Identity: domain.Identity{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  claims.Role,
		},
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	session.ExpiresAt = claims.ExpiresAt.Time
	return session, nil
}

func (s *CredentialService) run(ctx context.Context, fn func()) error {
	if s.runner != nil {
		return s.runner.Do(ctx, fn)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}
