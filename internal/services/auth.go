// Package services contains the application logic between the CLI and the
// repositories. This file implements the account authenticator: account
// creation, sign-in and the security-question recovery flow.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/cryptox"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/repomanager"
)

// TicketIssuer mints and checks recovery tickets. *auth.Issuer implements it.
type TicketIssuer interface {
	Issue(username string) (string, error)
	Validate(ticket, username string) error
}

// AuthService defines account operations for the CLI.
//
// Contract:
//   - CreateAccount: register a user; duplicate usernames yield common.ErrDuplicateUsername.
//   - SignIn: check a password; unknown users yield common.ErrorNotFound and
//     wrong passwords common.ErrMismatch. Callers must present both the same way.
//   - NewRecovery: start a password recovery attempt.
type AuthService interface {
	CreateAccount(ctx context.Context, in models.NewAccount) (*models.Account, error)
	SignIn(ctx context.Context, username, password string) (*models.Account, error)
	NewRecovery() *RecoveryAttempt
}

type authService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.Hasher
	tickets     TicketIssuer
	log         logging.Logger
}

// NewAuthService constructs an AuthService over db.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.Hasher, tickets TicketIssuer, log logging.Logger) AuthService {
	return &authService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tickets:     tickets,
		log:         log.With("component", "auth"),
	}
}

func (s *authService) CreateAccount(ctx context.Context, in models.NewAccount) (*models.Account, error) {
	required := []struct{ field, value string }{
		{"username", in.Username},
		{"name", in.Name},
		{"password", in.Password},
		{"answer", in.Answer},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", common.ErrorValidation, r.field)
		}
	}
	if !in.Question.Valid() {
		return nil, common.ErrInvalidQuestion
	}

	pwHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	answerHash, err := s.hasher.Hash(models.NormalizeAnswer(in.Answer))
	if err != nil {
		return nil, fmt.Errorf("hash answer: %w", err)
	}

	acc := &models.Account{
		Username:     in.Username,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: pwHash,
		Question:     in.Question,
		AnswerHash:   answerHash,
	}

	acc, err = s.repomanager.Accounts(s.db).Insert(ctx, acc)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, persistence(err)
	}

	s.log.Info(ctx, "account created", "username", acc.Username)
	return acc, nil
}

func (s *authService) SignIn(ctx context.Context, username, password string) (*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)

	acc, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, persistence(err)
	}

	if err := s.verify(ctx, username, "password", acc.PasswordHash, password, common.ErrMismatch); err != nil {
		return nil, err
	}

	if s.hasher.NeedsRehash(acc.PasswordHash) {
		if h, err := s.hasher.Hash(password); err != nil {
			s.log.Warn(ctx, "password rehash failed", "username", username, "error", err)
		} else if err := repo.UpdatePasswordHash(ctx, username, h); err != nil {
			s.log.Warn(ctx, "password rehash not saved", "username", username, "error", err)
		} else {
			acc.PasswordHash = h
			s.log.Debug(ctx, "password hash upgraded", "username", username)
		}
	}

	s.log.Info(ctx, "signed in", "username", username)
	return acc, nil
}

func (s *authService) NewRecovery() *RecoveryAttempt {
	return &RecoveryAttempt{svc: s}
}

// verify checks plaintext against a stored hash. A malformed hash is an
// integrity fault: it is logged and reported as ErrCorruptCredential.
func (s *authService) verify(ctx context.Context, username, field, encoded, plaintext string, mismatch error) error {
	err := s.hasher.Verify(encoded, plaintext)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cryptox.ErrHashMismatch):
		return mismatch
	case errors.Is(err, cryptox.ErrMalformedHash):
		s.log.Error(ctx, "corrupt stored credential", "username", username, "field", field)
		return common.ErrCorruptCredential
	}
	return fmt.Errorf("verify %s: %w", field, err)
}

func persistence(err error) error {
	return fmt.Errorf("%w: %w", common.ErrPersistence, err)
}
