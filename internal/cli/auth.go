package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register walks the user through account creation.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	password, err := a.newPassword("Enter password")
	if err != nil {
		return err
	}

	q, err := a.chooseQuestion(models.SecurityQuestions())
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "Enter your answer", a.out)
	if err != nil {
		return err
	}

	_, err = a.authService.CreateAccount(ctx, models.NewAccount{
		Username: username,
		Name:     name,
		Password: password,
		Question: q,
		Answer:   answer,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can now login.")
	return nil
}

// Login signs in and opens a session. Unknown users and wrong passwords
// get the same message.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.authService.SignIn(ctx, username, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrMismatch) {
			fmt.Fprintln(a.out, msgBadCredentials)
			return nil
		}
		return err
	}

	s, err := a.ledgerService.Open(ctx, acc)
	if err != nil {
		return err
	}
	a.session = s
	return a.Home(ctx)
}

// Reset runs one password recovery attempt: username, question and
// answer, then the new password.
func (a *App) Reset(ctx context.Context) error {
	attempt := a.authService.NewRecovery()

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	questions, err := attempt.Begin(username)
	if err != nil {
		return err
	}

	q, err := a.chooseQuestion(questions)
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "Enter your answer", a.out)
	if err != nil {
		return err
	}

	err = attempt.Verify(ctx, username, q, answer)
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrQuestionMismatch),
		errors.Is(err, common.ErrMismatch):
		fmt.Fprintln(a.out, "Security question or answer is incorrect.")
		return nil
	case err != nil:
		return err
	}

	password, err := a.newPassword("Enter new password")
	if err != nil {
		return err
	}
	if err := attempt.Complete(ctx, username, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password updated. You can now login.")
	return nil
}

// Logout drops the session.
func (a *App) Logout(ctx context.Context) error {
	a.session = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// newPassword asks for a password twice.
func (a *App) newPassword(prompt string) (string, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(confirm)

	if string(pw) != string(confirm) {
		return "", fmt.Errorf("%w: passwords do not match", common.ErrorValidation)
	}
	return string(pw), nil
}

// chooseQuestion prints the menu and reads a number or the question text.
// An unrecognized choice comes back as an invalid question so the service
// reports it.
func (a *App) chooseQuestion(qs []models.SecurityQuestion) (models.SecurityQuestion, error) {
	for i, q := range qs {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, q)
	}
	choice, err := getSimpleText(a.reader, fmt.Sprintf("Choose a security question (1-%d)", len(qs)), a.out)
	if err != nil {
		return 0, err
	}
	q, ok := models.ParseSecurityQuestion(choice)
	if !ok {
		return models.SecurityQuestion(-1), nil
	}
	return q, nil
}
