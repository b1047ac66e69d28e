package services

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/cryptox"
	"github.com/dmitrijs2005/budgetkeeper/internal/dbx"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/accounts"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/budgets"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/goals"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/investments"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/transactions"
	"github.com/dmitrijs2005/budgetkeeper/internal/storage"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newTestDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	rm := repomanager.NewSQLiteRepositoryManager()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "finance.db"), rm, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, rm
}

func fastHasher() *cryptox.Argon2Hasher {
	return cryptox.NewArgon2Hasher(cryptox.Params{Time: 1, MemoryKiB: 64, Threads: 1})
}

func storedPasswordHash(t *testing.T, db *sql.DB, username string) string {
	t.Helper()
	var h string
	require.NoError(t, db.QueryRow(`SELECT password FROM users WHERE username = ?`, username).Scan(&h))
	return h
}

func aliceInput() models.NewAccount {
	return models.NewAccount{
		Username: "alice",
		Name:     "Alice",
		Password: "OldPass1",
		Question: models.QuestionFirstPet,
		Answer:   " Rex ",
	}
}

// recordingLogger keeps Error messages so tests can assert anomalies were logged.
type recordingLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
}

func (l *recordingLogger) Debug(context.Context, string, ...any) {}
func (l *recordingLogger) Info(context.Context, string, ...any)  {}

func (l *recordingLogger) Warn(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) With(...any) logging.Logger { return l }

// flakyManager wraps the real repositories and injects store failures.
// listErr fails every record list read while writes still go through.
type flakyManager struct {
	repomanager.RepositoryManager
	findErr   error
	insertErr error
	updateErr error
	listErr   error
}

func (m *flakyManager) Goals(db dbx.DBTX) goals.Repository {
	return &flakyGoals{Repository: m.RepositoryManager.Goals(db), err: m.listErr}
}

func (m *flakyManager) Transactions(db dbx.DBTX) transactions.Repository {
	return &flakyTransactions{Repository: m.RepositoryManager.Transactions(db), err: m.listErr}
}

func (m *flakyManager) Budgets(db dbx.DBTX) budgets.Repository {
	return &flakyBudgets{Repository: m.RepositoryManager.Budgets(db), err: m.listErr}
}

func (m *flakyManager) Investments(db dbx.DBTX) investments.Repository {
	return &flakyInvestments{Repository: m.RepositoryManager.Investments(db), err: m.listErr}
}

type flakyGoals struct {
	goals.Repository
	err error
}

func (f *flakyGoals) ListByAccount(ctx context.Context, accountID int64) ([]models.Goal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Repository.ListByAccount(ctx, accountID)
}

type flakyTransactions struct {
	transactions.Repository
	err error
}

func (f *flakyTransactions) ListByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Repository.ListByAccount(ctx, accountID)
}

type flakyBudgets struct {
	budgets.Repository
	err error
}

func (f *flakyBudgets) ListByAccount(ctx context.Context, accountID int64) ([]models.Budget, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Repository.ListByAccount(ctx, accountID)
}

type flakyInvestments struct {
	investments.Repository
	err error
}

func (f *flakyInvestments) ListByAccount(ctx context.Context, accountID int64) ([]models.Investment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Repository.ListByAccount(ctx, accountID)
}

func (m *flakyManager) Accounts(db dbx.DBTX) accounts.Repository {
	return &flakyAccounts{Repository: m.RepositoryManager.Accounts(db), m: m}
}

type flakyAccounts struct {
	accounts.Repository
	m *flakyManager
}

func (f *flakyAccounts) Insert(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.m.insertErr != nil {
		return nil, f.m.insertErr
	}
	return f.Repository.Insert(ctx, a)
}

func (f *flakyAccounts) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	if f.m.findErr != nil {
		return nil, f.m.findErr
	}
	return f.Repository.FindByUsername(ctx, username)
}

func (f *flakyAccounts) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	if f.m.updateErr != nil {
		return f.m.updateErr
	}
	return f.Repository.UpdatePasswordHash(ctx, username, hash)
}

// fakeTickets lets tests force ticket validation outcomes.
type fakeTickets struct {
	issueErr    error
	validateErr error
}

func (f *fakeTickets) Issue(username string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "ticket-for-" + username, nil
}

func (f *fakeTickets) Validate(ticket, username string) error {
	if f.validateErr != nil {
		return f.validateErr
	}
	if ticket != "ticket-for-"+username {
		return errInvalidFakeTicket
	}
	return nil
}

var errInvalidFakeTicket = fmt.Errorf("%w: fake", common.ErrInvalidToken)
