package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

// RecoveryState is the position of a RecoveryAttempt in the flow
// Idle -> UsernameEntered -> QuestionVerified -> Completed.
type RecoveryState int

const (
	RecoveryIdle RecoveryState = iota
	RecoveryUsernameEntered
	RecoveryQuestionVerified
	RecoveryCompleted
)

func (s RecoveryState) String() string {
	switch s {
	case RecoveryIdle:
		return "idle"
	case RecoveryUsernameEntered:
		return "username entered"
	case RecoveryQuestionVerified:
		return "question verified"
	case RecoveryCompleted:
		return "completed"
	}
	return fmt.Sprintf("RecoveryState(%d)", int(s))
}

// RecoveryAttempt is one in-flight password recovery. It is not safe for
// concurrent use; the CLI owns it for the duration of the reset command.
//
// Failed steps never change the state, with one exception: an expired
// recovery ticket sends the attempt back to RecoveryUsernameEntered so the
// question has to be answered again.
type RecoveryAttempt struct {
	svc      *authService
	state    RecoveryState
	username string
	ticket   string
}

// State returns the current state.
func (a *RecoveryAttempt) State() RecoveryState { return a.state }

// Begin records the username and returns the question menu. It never
// consults the store, so it reveals nothing about whether the user exists.
// Calling it again before completion restarts the attempt.
func (a *RecoveryAttempt) Begin(username string) ([]models.SecurityQuestion, error) {
	if a.state == RecoveryCompleted {
		return nil, fmt.Errorf("%w: attempt already completed", common.ErrSequence)
	}
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrorValidation)
	}

	a.username = username
	a.ticket = ""
	a.state = RecoveryUsernameEntered
	return models.SecurityQuestions(), nil
}

// Verify checks the chosen question and answer for the begun username.
func (a *RecoveryAttempt) Verify(ctx context.Context, username string, q models.SecurityQuestion, answer string) error {
	if a.state != RecoveryUsernameEntered || username != a.username {
		return fmt.Errorf("%w: verify in state %s", common.ErrSequence, a.state)
	}
	if !q.Valid() {
		return common.ErrInvalidQuestion
	}

	s := a.svc
	acc, err := s.repomanager.Accounts(s.db).FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return persistence(err)
	}
	if acc.Question != q {
		return common.ErrQuestionMismatch
	}
	if err := s.verify(ctx, username, "answer", acc.AnswerHash, models.NormalizeAnswer(answer), common.ErrAnswerMismatch); err != nil {
		return err
	}

	ticket, err := s.tickets.Issue(username)
	if err != nil {
		return err
	}
	a.ticket = ticket
	a.state = RecoveryQuestionVerified
	return nil
}

// Complete stores a new password. It requires a verified attempt for the
// same username whose ticket has not expired.
func (a *RecoveryAttempt) Complete(ctx context.Context, username, newPassword string) error {
	if a.state != RecoveryQuestionVerified || username != a.username {
		return fmt.Errorf("%w: complete in state %s", common.ErrSequence, a.state)
	}

	s := a.svc
	if err := s.tickets.Validate(a.ticket, username); err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			a.ticket = ""
			a.state = RecoveryUsernameEntered
		}
		return fmt.Errorf("%w: %w", common.ErrSequence, err)
	}

	h, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repomanager.Accounts(s.db).UpdatePasswordHash(ctx, username, h); err != nil {
		return persistence(err)
	}

	a.ticket = ""
	a.state = RecoveryCompleted
	s.log.Info(ctx, "password reset", "username", username)
	return nil
}
