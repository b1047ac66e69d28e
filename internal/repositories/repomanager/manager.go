package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/budgetkeeper/internal/dbx"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/accounts"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/budgets"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/goals"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/investments"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/transactions"
)

// RepositoryManager vends repositories bound to a DBTX so services can
// use the same code path inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Goals(db dbx.DBTX) goals.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Budgets(db dbx.DBTX) budgets.Repository
	Investments(db dbx.DBTX) investments.Repository
}
