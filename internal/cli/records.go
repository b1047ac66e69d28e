package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/ledger"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/services"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// greeting renders the stored name in title case, e.g. "mary ann" as "Mary Ann".
var greeting = cases.Title(language.Und)

// Home prints the welcome page: balance and the next upcoming goal.
func (a *App) Home(ctx context.Context) error {
	s := a.session
	fmt.Fprintf(a.out, "Welcome, %s!\n", greeting.String(s.Name))
	fmt.Fprintf(a.out, "Balance: %s\n", models.FormatAmount(ledger.Totals(s.Transactions).Net))

	if g, ok := ledger.NextGoal(s.Goals, a.now()); ok {
		fmt.Fprintf(a.out, "Next goal: %s on %s (%s)\n", g.Name, models.FormatDate(g.Date), models.FormatAmount(g.Amount))
	} else {
		fmt.Fprintln(a.out, "No upcoming goals.")
	}
	return nil
}

// Goals lists goals, optionally sorted by the first argument.
func (a *App) Goals(ctx context.Context, args []string) error {
	key, err := sortArg(args, 0)
	if err != nil {
		return err
	}
	goals := ledger.SortGoals(a.session.Goals, key)
	if len(goals) == 0 {
		fmt.Fprintln(a.out, "No goals yet. Use addgoal to create one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION\tDATE\tAMOUNT")
	for _, g := range goals {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", g.ID, g.Name, g.Description, models.FormatDate(g.Date), models.FormatAmount(g.Amount))
	}
	return tw.Flush()
}

func (a *App) AddGoal(ctx context.Context) error {
	var in services.GoalInput
	if err := a.ask(
		prompt{"Goal name", &in.Name},
		prompt{"Description", &in.Description},
		prompt{"Target date (yy/mm/dd)", &in.Date},
		prompt{"Amount", &in.Amount},
	); err != nil {
		return err
	}
	if _, err := a.ledgerService.AddGoal(ctx, a.session, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Goal added.")
	return nil
}

func (a *App) DeleteGoal(ctx context.Context) error {
	id, err := a.askID("Enter goal id to delete")
	if err != nil {
		return err
	}
	if err := a.ledgerService.DeleteGoal(ctx, a.session, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Goal deleted.")
	return nil
}

// CashFlow prints the income and expense tables followed by the totals.
// The optional arguments sort income and expenses respectively.
func (a *App) CashFlow(ctx context.Context, args []string) error {
	incomeKey, err := sortArg(args, 0)
	if err != nil {
		return err
	}
	expenseKey, err := sortArg(args, 1)
	if err != nil {
		return err
	}

	income, expenses := ledger.SplitTransactions(a.session.Transactions)

	fmt.Fprintln(a.out, "Income")
	if err := a.transactionTable(ledger.SortTransactions(income, incomeKey)); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Expenses")
	if err := a.transactionTable(ledger.SortTransactions(expenses, expenseKey)); err != nil {
		return err
	}

	t := ledger.Totals(a.session.Transactions)
	fmt.Fprintln(a.out)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total income:\t%s\n", models.FormatAmount(t.Income))
	fmt.Fprintf(tw, "Total expenses:\t%s\n", models.FormatAmount(t.Expenses))
	fmt.Fprintf(tw, "Net:\t%s\n", models.FormatAmount(t.Net))
	return tw.Flush()
}

func (a *App) AddTransaction(ctx context.Context) error {
	var in services.TransactionInput
	if err := a.ask(
		prompt{"Amount (negative for an expense)", &in.Amount},
		prompt{"Date (yy/mm/dd)", &in.Date},
		prompt{"Description", &in.Description},
	); err != nil {
		return err
	}
	if _, err := a.ledgerService.AddTransaction(ctx, a.session, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Transaction added.")
	return nil
}

func (a *App) DeleteTransaction(ctx context.Context) error {
	id, err := a.askID("Enter transaction id to delete")
	if err != nil {
		return err
	}
	if err := a.ledgerService.DeleteTransaction(ctx, a.session, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Transaction deleted.")
	return nil
}

func (a *App) Budgets(ctx context.Context) error {
	if len(a.session.Budgets) == 0 {
		fmt.Fprintln(a.out, "No budgets yet. Use addbudget to create one.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAMOUNT\tEND DATE")
	for _, b := range a.session.Budgets {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", b.ID, b.Name, models.FormatAmount(b.Amount), models.FormatDate(b.EndDate))
	}
	return tw.Flush()
}

func (a *App) AddBudget(ctx context.Context) error {
	var in services.BudgetInput
	if err := a.ask(
		prompt{"Budget name", &in.Name},
		prompt{"Amount", &in.Amount},
		prompt{"End date (yy/mm/dd)", &in.EndDate},
	); err != nil {
		return err
	}
	if _, err := a.ledgerService.AddBudget(ctx, a.session, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Budget added.")
	return nil
}

func (a *App) DeleteBudget(ctx context.Context) error {
	id, err := a.askID("Enter budget id to delete")
	if err != nil {
		return err
	}
	if err := a.ledgerService.DeleteBudget(ctx, a.session, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Budget deleted.")
	return nil
}

func (a *App) Investments(ctx context.Context) error {
	if len(a.session.Investments) == 0 {
		fmt.Fprintln(a.out, "No investments yet. Use addinvestment to record one.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATE")
	for _, inv := range a.session.Investments {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", inv.ID, inv.Name, models.FormatDate(inv.Date))
	}
	return tw.Flush()
}

func (a *App) AddInvestment(ctx context.Context) error {
	var in services.InvestmentInput
	if err := a.ask(
		prompt{"Investment name", &in.Name},
		prompt{"Date (yy/mm/dd)", &in.Date},
	); err != nil {
		return err
	}
	if _, err := a.ledgerService.AddInvestment(ctx, a.session, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Investment added.")
	return nil
}

func (a *App) DeleteInvestment(ctx context.Context) error {
	id, err := a.askID("Enter investment id to delete")
	if err != nil {
		return err
	}
	if err := a.ledgerService.DeleteInvestment(ctx, a.session, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Investment deleted.")
	return nil
}

// --- helpers below ---

type prompt struct {
	text string
	dst  *string
}

func (a *App) ask(ps ...prompt) error {
	for _, p := range ps {
		v, err := getSimpleText(a.reader, p.text, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}
	return nil
}

func (a *App) askID(text string) (int64, error) {
	s, err := getSimpleText(a.reader, text, a.out)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a record id", common.ErrorValidation, s)
	}
	return id, nil
}

func (a *App) transactionTable(ts []models.Transaction) error {
	if len(ts) == 0 {
		fmt.Fprintln(a.out, "  (none)")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tAMOUNT\tDESCRIPTION")
	for _, t := range ts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, models.FormatDate(t.Date), models.FormatAmount(t.Amount), t.Description)
	}
	return tw.Flush()
}

func sortArg(args []string, i int) (ledger.SortKey, error) {
	if i >= len(args) {
		return ledger.Unsorted, nil
	}
	return ledger.ParseSortKey(args[i])
}
