package ledger

import (
	"slices"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// SplitTransactions partitions ts into income (amount > 0) and expenses
// (amount < 0), keeping relative order. Zero amounts belong to neither.
func SplitTransactions(ts []models.Transaction) (income, expenses []models.Transaction) {
	for _, t := range ts {
		switch {
		case t.IsIncome():
			income = append(income, t)
		case t.IsExpense():
			expenses = append(expenses, t)
		}
	}
	return income, expenses
}

// Summary is the totals row of the cash-flow page. Expenses is negative
// (or zero) and Net is the account balance.
type Summary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// Totals sums ts.
func Totals(ts []models.Transaction) Summary {
	var s Summary
	for _, t := range ts {
		switch {
		case t.IsIncome():
			s.Income = s.Income.Add(t.Amount)
		case t.IsExpense():
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}
	s.Net = s.Income.Add(s.Expenses)
	return s
}

// CashFlowPoint is one day of the cumulative cash-flow series.
type CashFlowPoint struct {
	Date       time.Time
	Amount     decimal.Decimal // net movement on Date
	Cumulative decimal.Decimal // running balance up to and including Date
}

// CashFlow groups ts by calendar date, ascending, with a running total.
func CashFlow(ts []models.Transaction) []CashFlowPoint {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, t := range ts {
		d := dateOnly(t.Date)
		byDay[d] = byDay[d].Add(t.Amount)
	}

	points := make([]CashFlowPoint, 0, len(byDay))
	for d, amt := range byDay {
		points = append(points, CashFlowPoint{Date: d, Amount: amt})
	}
	slices.SortFunc(points, func(a, b CashFlowPoint) int { return a.Date.Compare(b.Date) })

	running := decimal.Zero
	for i := range points {
		running = running.Add(points[i].Amount)
		points[i].Cumulative = running
	}
	return points
}

// NextGoal returns the goal whose date is closest to today without being
// in the past. Ties go to the earlier entry in gs.
func NextGoal(gs []models.Goal, today time.Time) (models.Goal, bool) {
	today = dateOnly(today)

	var (
		best  models.Goal
		found bool
	)
	for _, g := range gs {
		d := dateOnly(g.Date)
		if d.Before(today) {
			continue
		}
		if !found || d.Before(dateOnly(best.Date)) {
			best, found = g, true
		}
	}
	return best, found
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
