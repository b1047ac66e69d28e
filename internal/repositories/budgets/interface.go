package budgets

import (
	"context"

	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

// Repository persists budgets scoped to an owning account.
type Repository interface {
	ListByAccount(ctx context.Context, accountID int64) ([]models.Budget, error)
	Insert(ctx context.Context, b *models.Budget) (int64, error)
	DeleteByID(ctx context.Context, accountID, id int64) error
}
