package transactions

import (
	"context"

	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

// Repository persists transactions scoped to an owning account.
type Repository interface {
	ListByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error)
	Insert(ctx context.Context, t *models.Transaction) (int64, error)
	DeleteByID(ctx context.Context, accountID, id int64) error
}
