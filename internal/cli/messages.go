package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
)

const msgBadCredentials = "Invalid username or password."

// describe turns a service error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
	case errors.Is(err, common.ErrDuplicateUsername):
		return "That username is already taken."
	case errors.Is(err, common.ErrInvalidQuestion):
		return "Please choose one of the listed questions."
	case errors.Is(err, common.ErrTokenExpired):
		return "The reset took too long. Please start again."
	case errors.Is(err, common.ErrSequence):
		return "Please start the reset again."
	case errors.Is(err, common.ErrCorruptCredential):
		return "Stored credentials are damaged. The problem has been logged."
	case errors.Is(err, common.ErrPersistence):
		return "Could not access the database. Please try again."
	case errors.Is(err, common.ErrorNotFound):
		return "No record with that id."
	}
	return err.Error()
}
