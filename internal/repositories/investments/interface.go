package investments

import (
	"context"

	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

// Repository persists investments scoped to an owning account.
type Repository interface {
	ListByAccount(ctx context.Context, accountID int64) ([]models.Investment, error)
	Insert(ctx context.Context, i *models.Investment) (int64, error)
	DeleteByID(ctx context.Context, accountID, id int64) error
}
