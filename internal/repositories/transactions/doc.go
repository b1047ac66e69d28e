// Package transactions stores signed cash movements per account. Positive
// amounts are income and negative amounts are expenses; the sign is kept
// as entered.
package transactions
