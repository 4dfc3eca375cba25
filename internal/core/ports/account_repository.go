package ports

import (
	"context"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
)

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	// Create inserts a new account; returns domain.ErrAccountExists on a duplicate email.
	Create(ctx context.Context, account *domain.Account) error
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByIDs returns the accounts that exist among ids, keyed by ID.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error)
}
