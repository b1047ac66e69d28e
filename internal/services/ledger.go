package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/dbx"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// Session is the signed-in state held by the CLI: who is signed in plus a
// snapshot of each record list, refreshed after every change.
type Session struct {
	ID        uuid.UUID
	AccountID int64
	Username  string
	Name      string

	Goals        []models.Goal
	Transactions []models.Transaction
	Budgets      []models.Budget
	Investments  []models.Investment
}

// GoalInput is a goal as typed by the user.
type GoalInput struct {
	Name        string
	Description string
	Date        string
	Amount      string
}

// TransactionInput is a transaction as typed by the user. A leading minus
// on Amount makes it an expense.
type TransactionInput struct {
	Amount      string
	Date        string
	Description string
}

type BudgetInput struct {
	Name    string
	Amount  string
	EndDate string
}

type InvestmentInput struct {
	Name string
	Date string
}

// LedgerService manages the financial records of a signed-in account.
// Validation failures wrap common.ErrorValidation, missing records are
// common.ErrorNotFound and store failures wrap common.ErrPersistence.
type LedgerService interface {
	Open(ctx context.Context, acc *models.Account) (*Session, error)

	AddGoal(ctx context.Context, s *Session, in GoalInput) (*models.Goal, error)
	AddTransaction(ctx context.Context, s *Session, in TransactionInput) (*models.Transaction, error)
	AddBudget(ctx context.Context, s *Session, in BudgetInput) (*models.Budget, error)
	AddInvestment(ctx context.Context, s *Session, in InvestmentInput) (*models.Investment, error)

	DeleteGoal(ctx context.Context, s *Session, id int64) error
	DeleteTransaction(ctx context.Context, s *Session, id int64) error
	DeleteBudget(ctx context.Context, s *Session, id int64) error
	DeleteInvestment(ctx context.Context, s *Session, id int64) error
}

type ledgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

// NewLedgerService constructs a LedgerService over db.
func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) LedgerService {
	return &ledgerService{db: db, repomanager: m, log: log.With("component", "ledger")}
}

// Open builds a Session for acc, loading all record lists in one transaction.
func (l *ledgerService) Open(ctx context.Context, acc *models.Account) (*Session, error) {
	s := &Session{
		ID:        uuid.New(),
		AccountID: acc.ID,
		Username:  acc.Username,
		Name:      acc.Name,
	}

	err := dbx.WithTx(ctx, l.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if s.Goals, err = l.repomanager.Goals(tx).ListByAccount(ctx, acc.ID); err != nil {
			return err
		}
		if s.Transactions, err = l.repomanager.Transactions(tx).ListByAccount(ctx, acc.ID); err != nil {
			return err
		}
		if s.Budgets, err = l.repomanager.Budgets(tx).ListByAccount(ctx, acc.ID); err != nil {
			return err
		}
		s.Investments, err = l.repomanager.Investments(tx).ListByAccount(ctx, acc.ID)
		return err
	})
	if err != nil {
		return nil, persistence(err)
	}

	l.log.Debug(ctx, "session opened", "session", s.ID.String(), "username", s.Username)
	return s, nil
}

func (l *ledgerService) AddGoal(ctx context.Context, s *Session, in GoalInput) (*models.Goal, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	amount, err := models.ParseAmount(in.Amount, false)
	if err != nil {
		return nil, err
	}

	g := &models.Goal{
		AccountID:   s.AccountID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Date:        date,
		Amount:      amount,
	}
	repo := l.repomanager.Goals(l.db)
	if _, err := repo.Insert(ctx, g); err != nil {
		return nil, persistence(err)
	}
	refreshSnapshot(ctx, l.log, &s.Goals, repo.ListByAccount, s.AccountID, func(cur []models.Goal) []models.Goal {
		return append(cur, *g)
	})
	return g, nil
}

func (l *ledgerService) AddTransaction(ctx context.Context, s *Session, in TransactionInput) (*models.Transaction, error) {
	amount, err := models.ParseAmount(in.Amount, true)
	if err != nil {
		return nil, err
	}
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	t := &models.Transaction{
		AccountID:   s.AccountID,
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(in.Description),
	}
	repo := l.repomanager.Transactions(l.db)
	if _, err := repo.Insert(ctx, t); err != nil {
		return nil, persistence(err)
	}
	refreshSnapshot(ctx, l.log, &s.Transactions, repo.ListByAccount, s.AccountID, func(cur []models.Transaction) []models.Transaction {
		return append(cur, *t)
	})
	return t, nil
}

func (l *ledgerService) AddBudget(ctx context.Context, s *Session, in BudgetInput) (*models.Budget, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	amount, err := models.ParseAmount(in.Amount, false)
	if err != nil {
		return nil, err
	}
	end, err := models.ParseDate(in.EndDate)
	if err != nil {
		return nil, err
	}

	b := &models.Budget{
		AccountID: s.AccountID,
		Name:      strings.TrimSpace(in.Name),
		Amount:    amount,
		EndDate:   end,
	}
	repo := l.repomanager.Budgets(l.db)
	if _, err := repo.Insert(ctx, b); err != nil {
		return nil, persistence(err)
	}
	refreshSnapshot(ctx, l.log, &s.Budgets, repo.ListByAccount, s.AccountID, func(cur []models.Budget) []models.Budget {
		return append(cur, *b)
	})
	return b, nil
}

func (l *ledgerService) AddInvestment(ctx context.Context, s *Session, in InvestmentInput) (*models.Investment, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	inv := &models.Investment{AccountID: s.AccountID, Name: strings.TrimSpace(in.Name), Date: date}
	repo := l.repomanager.Investments(l.db)
	if _, err := repo.Insert(ctx, inv); err != nil {
		return nil, persistence(err)
	}
	refreshSnapshot(ctx, l.log, &s.Investments, repo.ListByAccount, s.AccountID, func(cur []models.Investment) []models.Investment {
		return append(cur, *inv)
	})
	return inv, nil
}

func (l *ledgerService) DeleteGoal(ctx context.Context, s *Session, id int64) error {
	repo := l.repomanager.Goals(l.db)
	if err := deleteErr(repo.DeleteByID(ctx, s.AccountID, id)); err != nil {
		return err
	}
	refreshSnapshot(ctx, l.log, &s.Goals, repo.ListByAccount, s.AccountID, func(cur []models.Goal) []models.Goal {
		return slices.DeleteFunc(slices.Clone(cur), func(r models.Goal) bool { return r.ID == id })
	})
	return nil
}

func (l *ledgerService) DeleteTransaction(ctx context.Context, s *Session, id int64) error {
	repo := l.repomanager.Transactions(l.db)
	if err := deleteErr(repo.DeleteByID(ctx, s.AccountID, id)); err != nil {
		return err
	}
	refreshSnapshot(ctx, l.log, &s.Transactions, repo.ListByAccount, s.AccountID, func(cur []models.Transaction) []models.Transaction {
		return slices.DeleteFunc(slices.Clone(cur), func(r models.Transaction) bool { return r.ID == id })
	})
	return nil
}

func (l *ledgerService) DeleteBudget(ctx context.Context, s *Session, id int64) error {
	repo := l.repomanager.Budgets(l.db)
	if err := deleteErr(repo.DeleteByID(ctx, s.AccountID, id)); err != nil {
		return err
	}
	refreshSnapshot(ctx, l.log, &s.Budgets, repo.ListByAccount, s.AccountID, func(cur []models.Budget) []models.Budget {
		return slices.DeleteFunc(slices.Clone(cur), func(r models.Budget) bool { return r.ID == id })
	})
	return nil
}

func (l *ledgerService) DeleteInvestment(ctx context.Context, s *Session, id int64) error {
	repo := l.repomanager.Investments(l.db)
	if err := deleteErr(repo.DeleteByID(ctx, s.AccountID, id)); err != nil {
		return err
	}
	refreshSnapshot(ctx, l.log, &s.Investments, repo.ListByAccount, s.AccountID, func(cur []models.Investment) []models.Investment {
		return slices.DeleteFunc(slices.Clone(cur), func(r models.Investment) bool { return r.ID == id })
	})
	return nil
}

// refreshSnapshot reloads *dst after a write. The write has already been
// committed at this point, so a failed reload is logged and patch is applied
// to the current snapshot instead.
func refreshSnapshot[T any](
	ctx context.Context,
	log logging.Logger,
	dst *[]T,
	list func(context.Context, int64) ([]T, error),
	accountID int64,
	patch func([]T) []T,
) {
	fresh, err := list(ctx, accountID)
	if err != nil {
		log.Warn(ctx, "snapshot reload failed", "account", accountID, "error", err)
		*dst = patch(*dst)
		return
	}
	*dst = fresh
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrorValidation, field)
	}
	return nil
}

func deleteErr(err error) error {
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return persistence(err)
}
