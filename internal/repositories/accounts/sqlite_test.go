package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/migrations"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "."))
	return db
}

func alice() *models.Account {
	return &models.Account{
		Username:     "alice",
		Name:         "Alice",
		PasswordHash: "$argon2id$pw",
		Question:     models.QuestionFirstAddress,
		AnswerHash:   "$argon2id$answer",
	}
}

func TestInsert_FindByUsername_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	got, err := r.Insert(ctx, alice())
	require.NoError(t, err)
	require.NotZero(t, got.ID)

	found, err := r.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	if diff := cmp.Diff(got, found); diff != "" {
		t.Fatalf("account mismatch (-want +got):\n%s", diff)
	}

	byID, err := r.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, models.QuestionFirstAddress, byID.Question)
}

func TestInsert_DuplicateUsername(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Insert(ctx, alice())
	require.NoError(t, err)

	_, err = r.Insert(ctx, alice())
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	// usernames are case-sensitive
	other := alice()
	other.Username = "Alice"
	_, err = r.Insert(ctx, other)
	require.NoError(t, err)
}

func TestFindByUsername_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Insert(ctx, alice())
	require.NoError(t, err)

	_, err = r.FindByUsername(ctx, "ALICE")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.GetByID(ctx, 999)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdatePasswordHash(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a, err := r.Insert(ctx, alice())
	require.NoError(t, err)

	require.NoError(t, r.UpdatePasswordHash(ctx, "alice", "$argon2id$new"))
	got, err := r.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "$argon2id$new", got.PasswordHash)
	assert.Equal(t, "$argon2id$answer", got.AnswerHash)

	err = r.UpdatePasswordHash(ctx, "bob", "$argon2id$new")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInsert_DriverError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs("alice", "Alice", "$argon2id$pw", int(models.QuestionFirstAddress), "$argon2id$answer").
		WillReturnError(errors.New("disk I/O error"))

	_, err = NewSQLiteRepository(db).Insert(context.Background(), alice())
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrDuplicateUsername)
	assert.Contains(t, err.Error(), "disk I/O error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsername_DriverError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username.*FROM\s+users\s+WHERE\s+username\s*=\s*\?`).
		WithArgs("alice").
		WillReturnError(errors.New("database is locked"))

	_, err = NewSQLiteRepository(db).FindByUsername(context.Background(), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePasswordHash_DriverError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+password`).
		WithArgs("$argon2id$new", "alice").
		WillReturnError(errors.New("readonly database"))

	err = NewSQLiteRepository(db).UpdatePasswordHash(context.Background(), "alice", "$argon2id$new")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
