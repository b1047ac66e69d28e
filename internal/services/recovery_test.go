package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/auth"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recoveryEnv struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	svc AuthService
}

func newRecoveryEnv(t *testing.T, tickets TicketIssuer) *recoveryEnv {
	t.Helper()
	db, rm := newTestDB(t)
	if tickets == nil {
		tickets = auth.NewIssuer(nil, time.Minute)
	}
	svc := NewAuthService(db, rm, fastHasher(), tickets, logging.NewNopLogger())
	_, err := svc.CreateAccount(context.Background(), aliceInput())
	require.NoError(t, err)
	return &recoveryEnv{db: db, rm: rm, svc: svc}
}

func TestRecovery_FullFlow(t *testing.T) {
	env := newRecoveryEnv(t, nil)
	ctx := context.Background()

	a := env.svc.NewRecovery()
	assert.Equal(t, RecoveryIdle, a.State())

	qs, err := a.Begin("alice")
	require.NoError(t, err)
	assert.Equal(t, models.SecurityQuestions(), qs)
	assert.Equal(t, RecoveryUsernameEntered, a.State())

	require.NoError(t, a.Verify(ctx, "alice", models.QuestionFirstPet, "rex"))
	assert.Equal(t, RecoveryQuestionVerified, a.State())

	require.NoError(t, a.Complete(ctx, "alice", "NewPass1"))
	assert.Equal(t, RecoveryCompleted, a.State())

	_, err = env.svc.SignIn(ctx, "alice", "NewPass1")
	require.NoError(t, err)
	_, err = env.svc.SignIn(ctx, "alice", "OldPass1")
	require.ErrorIs(t, err, common.ErrMismatch)

	_, err = a.Begin("alice")
	assert.ErrorIs(t, err, common.ErrSequence)
	assert.Equal(t, RecoveryCompleted, a.State())
}

func TestRecovery_AnswerNormalization(t *testing.T) {
	for _, answer := range []string{"rex", "REX", "  Rex", "rEx\t"} {
		env := newRecoveryEnv(t, nil)
		a := env.svc.NewRecovery()
		_, err := a.Begin("alice")
		require.NoError(t, err)
		assert.NoError(t, a.Verify(context.Background(), "alice", models.QuestionFirstPet, answer), "%q", answer)
	}
}

func TestRecovery_CompleteBeforeVerify(t *testing.T) {
	env := newRecoveryEnv(t, nil)
	ctx := context.Background()
	before := storedPasswordHash(t, env.db, "alice")

	a := env.svc.NewRecovery()
	err := a.Complete(ctx, "alice", "NewPass1")
	require.ErrorIs(t, err, common.ErrSequence)
	assert.Equal(t, RecoveryIdle, a.State())

	_, err = a.Begin("alice")
	require.NoError(t, err)
	err = a.Complete(ctx, "alice", "NewPass1")
	require.ErrorIs(t, err, common.ErrSequence)
	assert.Equal(t, RecoveryUsernameEntered, a.State())

	assert.Equal(t, before, storedPasswordHash(t, env.db, "alice"))
}

func TestRecovery_VerifyFailures(t *testing.T) {
	env := newRecoveryEnv(t, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		question models.SecurityQuestion
		answer   string
		want     error
	}{
		{"invalid question", "alice", models.SecurityQuestion(7), "rex", common.ErrInvalidQuestion},
		{"invalid question beats unknown user", "nobody", models.SecurityQuestion(-1), "rex", common.ErrInvalidQuestion},
		{"unknown user", "nobody", models.QuestionFirstPet, "rex", common.ErrorNotFound},
		{"question mismatch", "alice", models.QuestionFirstLove, "rex", common.ErrQuestionMismatch},
		{"wrong answer", "alice", models.QuestionFirstPet, "fido", common.ErrAnswerMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := env.svc.NewRecovery()
			_, err := a.Begin(tt.username)
			require.NoError(t, err)

			err = a.Verify(ctx, tt.username, tt.question, tt.answer)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, RecoveryUsernameEntered, a.State())
		})
	}
}

func TestRecovery_WrongAnswerIsMismatch(t *testing.T) {
	env := newRecoveryEnv(t, nil)
	a := env.svc.NewRecovery()
	_, err := a.Begin("alice")
	require.NoError(t, err)

	err = a.Verify(context.Background(), "alice", models.QuestionFirstPet, "fido")
	assert.ErrorIs(t, err, common.ErrMismatch)
	assert.NotErrorIs(t, err, common.ErrCorruptCredential)

	// retry after a failed attempt
	require.NoError(t, a.Verify(context.Background(), "alice", models.QuestionFirstPet, "Rex"))
}

func TestRecovery_CorruptAnswerHash(t *testing.T) {
	env := newRecoveryEnv(t, nil)
	_, err := env.db.Exec(`UPDATE users SET factorA = 'rex' WHERE username = 'alice'`)
	require.NoError(t, err)

	a := env.svc.NewRecovery()
	_, err = a.Begin("alice")
	require.NoError(t, err)
	err = a.Verify(context.Background(), "alice", models.QuestionFirstPet, "rex")
	assert.ErrorIs(t, err, common.ErrCorruptCredential)
}

func TestRecovery_UsernameMustMatchBegin(t *testing.T) {
	env := newRecoveryEnv(t, nil)
	ctx := context.Background()

	a := env.svc.NewRecovery()
	err := a.Verify(ctx, "alice", models.QuestionFirstPet, "rex")
	require.ErrorIs(t, err, common.ErrSequence)

	_, err = a.Begin("mallory")
	require.NoError(t, err)
	err = a.Verify(ctx, "alice", models.QuestionFirstPet, "rex")
	require.ErrorIs(t, err, common.ErrSequence)

	_, err = a.Begin("alice")
	require.NoError(t, err)
	require.NoError(t, a.Verify(ctx, "alice", models.QuestionFirstPet, "rex"))

	before := storedPasswordHash(t, env.db, "alice")
	err = a.Complete(ctx, "bob", "NewPass1")
	require.ErrorIs(t, err, common.ErrSequence)
	assert.Equal(t, RecoveryQuestionVerified, a.State())
	assert.Equal(t, before, storedPasswordHash(t, env.db, "alice"))
}

func TestRecovery_BeginValidationAndRestart(t *testing.T) {
	env := newRecoveryEnv(t, nil)
	ctx := context.Background()

	a := env.svc.NewRecovery()
	_, err := a.Begin("   ")
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Equal(t, RecoveryIdle, a.State())

	// unknown usernames are accepted at this step
	qs, err := a.Begin("ghost")
	require.NoError(t, err)
	assert.Len(t, qs, 4)

	_, err = a.Begin("alice")
	require.NoError(t, err)
	require.NoError(t, a.Verify(ctx, "alice", models.QuestionFirstPet, "rex"))

	// restarting discards the verification
	_, err = a.Begin("alice")
	require.NoError(t, err)
	assert.Equal(t, RecoveryUsernameEntered, a.State())
	require.ErrorIs(t, a.Complete(ctx, "alice", "NewPass1"), common.ErrSequence)
}

func TestRecovery_ExpiredTicket(t *testing.T) {
	tickets := &fakeTickets{}
	env := newRecoveryEnv(t, tickets)
	ctx := context.Background()
	before := storedPasswordHash(t, env.db, "alice")

	a := env.svc.NewRecovery()
	_, err := a.Begin("alice")
	require.NoError(t, err)
	require.NoError(t, a.Verify(ctx, "alice", models.QuestionFirstPet, "rex"))

	tickets.validateErr = common.ErrTokenExpired
	err = a.Complete(ctx, "alice", "NewPass1")
	require.ErrorIs(t, err, common.ErrSequence)
	require.ErrorIs(t, err, common.ErrTokenExpired)
	assert.Equal(t, RecoveryUsernameEntered, a.State())
	assert.Equal(t, before, storedPasswordHash(t, env.db, "alice"))

	// answering again yields a fresh ticket
	tickets.validateErr = nil
	require.NoError(t, a.Verify(ctx, "alice", models.QuestionFirstPet, "rex"))
	require.NoError(t, a.Complete(ctx, "alice", "NewPass1"))
}

func TestRecovery_TicketIssueError(t *testing.T) {
	env := newRecoveryEnv(t, &fakeTickets{issueErr: errors.New("no entropy")})
	a := env.svc.NewRecovery()
	_, err := a.Begin("alice")
	require.NoError(t, err)

	err = a.Verify(context.Background(), "alice", models.QuestionFirstPet, "rex")
	require.Error(t, err)
	assert.Equal(t, RecoveryUsernameEntered, a.State())
}

func TestRecovery_CompletePersistenceError(t *testing.T) {
	env := newRecoveryEnv(t, nil)
	ctx := context.Background()

	flaky := &flakyManager{RepositoryManager: env.rm}
	svc := NewAuthService(env.db, flaky, fastHasher(), auth.NewIssuer(nil, time.Minute), logging.NewNopLogger())

	a := svc.NewRecovery()
	_, err := a.Begin("alice")
	require.NoError(t, err)
	require.NoError(t, a.Verify(ctx, "alice", models.QuestionFirstPet, "rex"))

	flaky.updateErr = errors.New("disk I/O error")
	err = a.Complete(ctx, "alice", "NewPass1")
	require.ErrorIs(t, err, common.ErrPersistence)
	assert.Equal(t, RecoveryQuestionVerified, a.State())

	flaky.updateErr = nil
	require.NoError(t, a.Complete(ctx, "alice", "NewPass1"))
	assert.Equal(t, RecoveryCompleted, a.State())
}

func TestRecovery_VerifyPersistenceError(t *testing.T) {
	env := newRecoveryEnv(t, nil)
	flaky := &flakyManager{RepositoryManager: env.rm, findErr: errors.New("database is locked")}
	svc := NewAuthService(env.db, flaky, fastHasher(), auth.NewIssuer(nil, time.Minute), logging.NewNopLogger())

	a := svc.NewRecovery()
	_, err := a.Begin("alice")
	require.NoError(t, err)
	err = a.Verify(context.Background(), "alice", models.QuestionFirstPet, "rex")
	require.ErrorIs(t, err, common.ErrPersistence)
}

func TestRecoveryState_String(t *testing.T) {
	assert.Equal(t, "question verified", RecoveryQuestionVerified.String())
	assert.Equal(t, "RecoveryState(9)", RecoveryState(9).String())
}
