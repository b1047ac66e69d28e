// Package repomanager provides a concrete RepositoryManager for SQLite,
// wiring together repository constructors and the embedded goose schema.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/dbx"
	"github.com/dmitrijs2005/budgetkeeper/internal/migrations"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/accounts"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/budgets"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/goals"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/investments"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/transactions"
	"github.com/pressly/goose/v3"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

// NewSQLiteRepositoryManager constructs a SQLite-backed RepositoryManager.
func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Goals(db dbx.DBTX) goals.Repository {
	return goals.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Budgets(db dbx.DBTX) budgets.Repository {
	return budgets.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Investments(db dbx.DBTX) investments.Repository {
	return investments.NewSQLiteRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema. It is idempotent.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
