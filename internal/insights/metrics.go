// Package insights derives the display metrics both client shells compute
// from the dashboard summary.
package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fundpal/clientcore/internal/domain"
)

// RunwayDays estimates how many days the current balance covers at the daily
// essential spend rate, floored to whole days. A non-positive rate or balance
// yields zero.
func RunwayDays(summary domain.DashboardSummary) int {
	if summary.DailyEssential <= 0 || summary.CurrentBalance <= 0 {
		return 0
	}
	days := decimal.NewFromFloat(summary.CurrentBalance).
		Div(decimal.NewFromFloat(summary.DailyEssential)).
		Floor()
	return int(days.IntPart())
}

// CategoryShare is one category's slice of total spend.
type CategoryShare struct {
	Name    string
	Spent   float64
	Budget  float64
	Percent float64 // share of total spend, 0–100
	OverBud bool
}

// CategoryShares computes each category's percentage of total spend, sorted
// by spend descending. Categories with zero spend are kept so budget bars
// still render.
func CategoryShares(categories map[string]domain.CategorySpend) []CategoryShare {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(decimal.NewFromFloat(c.Spent))
	}

	shares := make([]CategoryShare, 0, len(categories))
	for name, c := range categories {
		share := CategoryShare{
			Name:    name,
			Spent:   c.Spent,
			Budget:  c.Budget,
			OverBud: c.Budget > 0 && c.Spent > c.Budget,
		}
		if total.IsPositive() {
			pct, _ := decimal.NewFromFloat(c.Spent).
				Div(total).
				Mul(decimal.NewFromInt(100)).
				Round(1).
				Float64()
			share.Percent = pct
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Spent != shares[j].Spent {
			return shares[i].Spent > shares[j].Spent
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

// Savings returns income minus expense.
func Savings(summary domain.DashboardSummary) float64 {
	diff, _ := decimal.NewFromFloat(summary.TotalIncome).
		Sub(decimal.NewFromFloat(summary.TotalExpense)).
		Float64()
	return diff
}
