package investments

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

func (r *SQLiteRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Investment, error) {
	query := `SELECT id, user_id, name, date FROM investments WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select investments: %w", err)
	}
	defer rows.Close()

	var result []models.Investment
	for rows.Next() {
		var (
			inv  models.Investment
			date string
		)
		if err := rows.Scan(&inv.ID, &inv.AccountID, &inv.Name, &date); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		if inv.Date, err = models.ParseStoredDate(date); err != nil {
			return nil, fmt.Errorf("investment %d has bad date %q: %w", inv.ID, date, err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, i *models.Investment) (int64, error) {
	query := `INSERT INTO investments (user_id, name, date) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, i.AccountID, i.Name, models.StoredDate(i.Date))
	if err != nil {
		return 0, fmt.Errorf("failed to insert investment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get investment id: %w", err)
	}
	i.ID = id
	return id, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, accountID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE id = ? AND user_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
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
