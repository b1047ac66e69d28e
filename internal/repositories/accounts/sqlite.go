package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/dbx"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

// SQLiteRepository implements Repository on the users table.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectAccount = `SELECT id, username, name, password, factorQ, factorA FROM users`

func (r *SQLiteRepository) Insert(ctx context.Context, a *models.Account) (*models.Account, error) {
	query := `INSERT INTO users (username, name, password, factorQ, factorA) VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, a.Username, a.Name, a.PasswordHash, int(a.Question), a.AnswerHash)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get account id: %w", err)
	}
	a.ID = id
	return a, nil
}

func (r *SQLiteRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccount+` WHERE username = ?`, username)
	return scanAccount(row)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccount+` WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *SQLiteRepository) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password = ? WHERE username = ?`, hash, username)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
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

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	var q int
	if err := row.Scan(&a.ID, &a.Username, &a.Name, &a.PasswordHash, &q, &a.AnswerHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	a.Question = models.SecurityQuestion(q)
	return a, nil
}
