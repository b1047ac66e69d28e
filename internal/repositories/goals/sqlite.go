package goals

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/dbx"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// SQLiteRepository implements Repository over a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Goal, error) {
	query := `SELECT id, user_id, name, description, date, amount FROM goal WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select goals: %w", err)
	}
	defer rows.Close()

	var result []models.Goal
	for rows.Next() {
		var (
			g      models.Goal
			desc   sql.NullString
			date   string
			amount decimal.NullDecimal
		)
		if err := rows.Scan(&g.ID, &g.AccountID, &g.Name, &desc, &date, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if g.Date, err = models.ParseStoredDate(date); err != nil {
			return nil, fmt.Errorf("goal %d has bad date %q: %w", g.ID, date, err)
		}
		g.Description = desc.String
		g.Amount = amount.Decimal
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, g *models.Goal) (int64, error) {
	query := `INSERT INTO goal (user_id, name, description, date, amount) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		g.AccountID, g.Name, g.Description, models.StoredDate(g.Date), g.Amount.String())
	if err != nil {
		return 0, fmt.Errorf("failed to insert goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get goal id: %w", err)
	}
	g.ID = id
	return id, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, accountID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goal WHERE id = ? AND user_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
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
