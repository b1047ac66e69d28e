// Package common defines shared constants and sentinel errors used across
// the storage, service and presentation layers of budgetkeeper. Callers
// should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrPersistence marks a failed or unavailable store. Services join it
	// with the driver error so the cause stays inspectable.
	ErrPersistence = errors.New("persistence error")

	// Validation errors (blank required fields, malformed dates and amounts).
	ErrorValidation = errors.New("validation error")

	// Credential errors.
	ErrMismatch          = errors.New("credential mismatch")
	ErrAnswerMismatch    = fmt.Errorf("security answer: %w", ErrMismatch)
	ErrCorruptCredential = errors.New("stored credential is not a valid hash")

	// Recovery errors.
	ErrInvalidQuestion  = errors.New("unknown security question")
	ErrQuestionMismatch = errors.New("security question does not match")
	ErrSequence         = errors.New("recovery step out of sequence")

	// Recovery ticket errors (invalid or expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
