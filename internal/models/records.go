package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target with a due date.
type Goal struct {
	ID          int64
	AccountID   int64
	Name        string
	Description string
	Date        time.Time
	Amount      decimal.Decimal
}

// Transaction is a signed cash movement: positive amounts are income,
// negative amounts are expenses.
type Transaction struct {
	ID          int64
	AccountID   int64
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// IsIncome reports a strictly positive amount.
func (t Transaction) IsIncome() bool { return t.Amount.IsPositive() }

// IsExpense reports a strictly negative amount.
func (t Transaction) IsExpense() bool { return t.Amount.IsNegative() }

// Budget caps spending under a name until EndDate.
type Budget struct {
	ID        int64
	AccountID int64
	Name      string
	Amount    decimal.Decimal
	EndDate   time.Time
}

// Investment records a named holding and when it was made.
type Investment struct {
	ID        int64
	AccountID int64
	Name      string
	Date      time.Time
}
