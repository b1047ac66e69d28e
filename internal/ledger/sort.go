// Package ledger holds the pure computations behind the finance pages:
// ordering record lists, splitting income from expenses, totals, the
// cumulative cash-flow series and the next upcoming goal.
//
// Nothing here touches storage; inputs are never mutated.
package ledger

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
)

// SortKey selects the order of a record listing.
type SortKey int

const (
	// Unsorted keeps store order (insertion order).
	Unsorted SortKey = iota
	ByDate
	ByAmount
	// ByName sorts goals by name and transactions by description.
	ByName
)

var sortKeyNames = map[SortKey]string{
	Unsorted: "unsorted",
	ByDate:   "date",
	ByAmount: "amount",
	ByName:   "name",
}

func (k SortKey) String() string {
	if s, ok := sortKeyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// ParseSortKey accepts "date", "amount", "name", and "", "none" or
// "unsorted" for store order. Matching is case-insensitive.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "unsorted":
		return Unsorted, nil
	case "date":
		return ByDate, nil
	case "amount":
		return ByAmount, nil
	case "name", "description":
		return ByName, nil
	}
	return Unsorted, fmt.Errorf("%w: unknown sort key %q", common.ErrorValidation, s)
}

// SortGoals returns a stably sorted copy of gs.
func SortGoals(gs []models.Goal, k SortKey) []models.Goal {
	out := slices.Clone(gs)
	switch k {
	case ByDate:
		slices.SortStableFunc(out, func(a, b models.Goal) int { return a.Date.Compare(b.Date) })
	case ByAmount:
		slices.SortStableFunc(out, func(a, b models.Goal) int { return a.Amount.Cmp(b.Amount) })
	case ByName:
		slices.SortStableFunc(out, func(a, b models.Goal) int { return cmp.Compare(a.Name, b.Name) })
	}
	return out
}

// SortTransactions returns a stably sorted copy of ts.
func SortTransactions(ts []models.Transaction, k SortKey) []models.Transaction {
	out := slices.Clone(ts)
	switch k {
	case ByDate:
		slices.SortStableFunc(out, func(a, b models.Transaction) int { return a.Date.Compare(b.Date) })
	case ByAmount:
		slices.SortStableFunc(out, func(a, b models.Transaction) int { return a.Amount.Cmp(b.Amount) })
	case ByName:
		slices.SortStableFunc(out, func(a, b models.Transaction) int { return cmp.Compare(a.Description, b.Description) })
	}
	return out
}
