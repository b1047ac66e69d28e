package budgets

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/dbx"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Budget, error) {
	query := `SELECT id, user_id, name, amount, end_date FROM budgets WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select budgets: %w", err)
	}
	defer rows.Close()

	var result []models.Budget
	for rows.Next() {
		var (
			b   models.Budget
			end string
		)
		if err := rows.Scan(&b.ID, &b.AccountID, &b.Name, &b.Amount, &end); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		if b.EndDate, err = models.ParseStoredDate(end); err != nil {
			return nil, fmt.Errorf("budget %d has bad end date %q: %w", b.ID, end, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, b *models.Budget) (int64, error) {
	query := `INSERT INTO budgets (user_id, name, amount, end_date) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, b.AccountID, b.Name, b.Amount.String(), models.StoredDate(b.EndDate))
	if err != nil {
		return 0, fmt.Errorf("failed to insert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get budget id: %w", err)
	}
	b.ID = id
	return id, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, accountID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
