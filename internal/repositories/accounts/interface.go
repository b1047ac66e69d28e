package accounts

import (
	"context"

	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

// Repository persists accounts.
type Repository interface {
	// Insert stores a new account and sets its ID.
	Insert(ctx context.Context, a *models.Account) (*models.Account, error)

	// FindByUsername returns the account with exactly this username.
	FindByUsername(ctx context.Context, username string) (*models.Account, error)

	// GetByID returns the account with the given id.
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// UpdatePasswordHash replaces the stored password hash of one account.
	UpdatePasswordHash(ctx context.Context, username, hash string) error
}
