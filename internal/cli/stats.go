package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/budgetkeeper/internal/ledger"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const chartWidth = 40

// Stats prints the running balance as a bar chart, one row per day with
// transactions, followed by a few daily figures.
func (a *App) Stats(ctx context.Context) error {
	points := ledger.CashFlow(a.session.Transactions)
	if len(points) == 0 {
		fmt.Fprintln(a.out, "No transactions yet.")
		return nil
	}

	fmt.Fprintln(a.out, "Cumulative cash flow")
	renderChart(a.out, points, chartWidth)

	daily := make(stats.Float64Data, 0, len(points))
	best, worst := points[0], points[0]
	for _, p := range points {
		daily = append(daily, p.Amount.InexactFloat64())
		if p.Amount.GreaterThan(best.Amount) {
			best = p
		}
		if p.Amount.LessThan(worst.Amount) {
			worst = p
		}
	}
	mean, err := stats.Mean(daily)
	if err != nil {
		return err
	}
	median, err := stats.Median(daily)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Days with activity: %d\n", len(points))
	fmt.Fprintf(a.out, "Average daily net:  %s\n", models.FormatAmount(decimal.NewFromFloat(mean)))
	fmt.Fprintf(a.out, "Median daily net:   %s\n", models.FormatAmount(decimal.NewFromFloat(median)))
	fmt.Fprintf(a.out, "Best day:           %s (%s)\n", models.FormatDate(best.Date), models.FormatAmount(best.Amount))
	fmt.Fprintf(a.out, "Worst day:          %s (%s)\n", models.FormatDate(worst.Date), models.FormatAmount(worst.Amount))
	return nil
}

// renderChart draws one horizontal bar per point, scaled so the largest
// absolute balance spans width cells. Negative balances use '-'.
func renderChart(w io.Writer, points []ledger.CashFlowPoint, width int) {
	maxAbs := decimal.Zero
	for _, p := range points {
		if abs := p.Cumulative.Abs(); abs.GreaterThan(maxAbs) {
			maxAbs = abs
		}
	}

	for _, p := range points {
		n := 0
		if !maxAbs.IsZero() {
			n = int(p.Cumulative.Abs().Mul(decimal.NewFromInt(int64(width))).Div(maxAbs).Round(0).IntPart())
		}
		bar := "#"
		if p.Cumulative.IsNegative() {
			bar = "-"
		}
		fmt.Fprintf(w, "%s |%s %s\n", models.FormatDate(p.Date), strings.Repeat(bar, n), models.FormatAmount(p.Cumulative))
	}
}
