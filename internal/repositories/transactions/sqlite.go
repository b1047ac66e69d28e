package transactions

import (
	"context"
	"database/sql"
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

// ListByAccount returns the account's transactions ordered by id.
func (r *SQLiteRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	query := `SELECT id, user_id, amount, date, description FROM transactions WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	var result []models.Transaction
	for rows.Next() {
		var (
			tx   models.Transaction
			date string
			desc sql.NullString
		)
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Amount, &date, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if tx.Date, err = models.ParseStoredDate(date); err != nil {
			return nil, fmt.Errorf("transaction %d has bad date %q: %w", tx.ID, date, err)
		}
		tx.Description = desc.String
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert stores t and returns its new id.
func (r *SQLiteRepository) Insert(ctx context.Context, t *models.Transaction) (int64, error) {
	query := `INSERT INTO transactions (user_id, amount, date, description) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, t.AccountID, t.Amount.String(), models.StoredDate(t.Date), t.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction id: %w", err)
	}
	t.ID = id
	return id, nil
}

// DeleteByID removes one transaction owned by accountID.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, accountID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
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
