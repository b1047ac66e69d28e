package goals

import (
	"context"

	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

// Repository persists goals scoped to an owning account.
type Repository interface {
	// ListByAccount returns the account's goals in insertion order.
	ListByAccount(ctx context.Context, accountID int64) ([]models.Goal, error)

	// Insert stores g and returns its new id.
	Insert(ctx context.Context, g *models.Goal) (int64, error)

	// DeleteByID removes a goal owned by accountID.
	DeleteByID(ctx context.Context, accountID, id int64) error
}
