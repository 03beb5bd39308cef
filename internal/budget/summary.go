// Package budget contains the pure projections derived from the
// transaction list: running totals, the monthly cash-flow series, and
// the per-pay-period budget views. Every function here is a pure fold
// over its inputs; the store recomputes them after each refetch.
package budget

import "moneydash/internal/core"

// Summary holds the realized running totals for the signed-in user.
// Only settled transactions contribute; pending ones are owed, not
// realized.
type Summary struct {
	Income      core.Money `json:"income"`
	Expenses    core.Money `json:"expenses"`
	Total       core.Money `json:"total"`
	Investments core.Money `json:"investments"`
}

// Summarize folds the transaction list into income, expense, net and
// investment totals. Income adds to the balance, everything else
// subtracts; the Investment category is additionally tracked on its
// own even though it is expense-typed by convention.
func Summarize(txs []core.Transaction) Summary {
	var s Summary
	for _, t := range txs {
		if !t.Settled() {
			continue
		}
		if t.IsIncome() {
			s.Income.Cents += t.Amount.Cents
			s.Total.Cents += t.Amount.Cents
			continue
		}
		s.Expenses.Cents += t.Amount.Cents
		s.Total.Cents -= t.Amount.Cents
		if t.CategoryName == core.CategoryInvestment {
			s.Investments.Cents += t.Amount.Cents
		}
	}
	return s
}
