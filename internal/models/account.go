// Package models defines the domain types shared by repositories, services
// and the CLI: accounts, security questions and the four financial record
// kinds, plus parsers for user-entered dates and amounts.
package models

// Account is a registered user. PasswordHash and AnswerHash are always
// Argon2id PHC strings, never plaintext.
type Account struct {
	ID           int64
	Username     string
	Name         string
	PasswordHash string
	Question     SecurityQuestion
	AnswerHash   string
}

// NewAccount is the input of the account-creation flow.
type NewAccount struct {
	Username string
	Name     string
	Password string
	Question SecurityQuestion
	Answer   string
}
