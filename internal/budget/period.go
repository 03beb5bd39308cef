package budget

import (
	"fmt"
	"time"

	"moneydash/internal/core"
)

// PayPeriod is one of the three fixed day-of-month ranges a calendar
// month is partitioned into. Each period owns one salary marker
// identity: the reserved description, the income category it is
// created under, and the anchor day its due date is pinned to.
type PayPeriod string

const (
	StartMonth PayPeriod = "start_month"
	MidMonth   PayPeriod = "mid_month"
	EndMonth   PayPeriod = "end_month"
)

// PeriodSpec describes a pay period's day range and marker identity.
type PeriodSpec struct {
	Period    PayPeriod
	DayStart  int
	DayEnd    int // upper bound 31 intentionally covers short months
	Marker    string
	Category  string
	AnchorDay int
}

var periodSpecs = map[PayPeriod]PeriodSpec{
	StartMonth: {StartMonth, 1, 14, core.MarkerSalaryStart, core.CategorySalary, 1},
	MidMonth:   {MidMonth, 15, 19, core.MarkerSalaryMid, core.CategorySalary, 15},
	EndMonth:   {EndMonth, 20, 31, core.MarkerExtraEnd, core.CategoryExtra, 20},
}

// ParsePayPeriod validates a period name from the outside.
func ParsePayPeriod(s string) (PayPeriod, error) {
	p := PayPeriod(s)
	if _, ok := periodSpecs[p]; !ok {
		return "", fmt.Errorf("unknown pay period %q", s)
	}
	return p, nil
}

// Spec returns the period's day range and marker identity.
func (p PayPeriod) Spec() PeriodSpec {
	return periodSpecs[p]
}

// PeriodView is the budget view of one pay period in one month:
// matched income marker, the expenses due in the day range, and what
// is left over (which may be negative).
type PeriodView struct {
	Period        PayPeriod          `json:"period"`
	Income        core.Money         `json:"income"`
	Items         []core.Transaction `json:"items"`
	TotalExpenses core.Money         `json:"total_expenses"`
	Leftover      core.Money         `json:"leftover"`
}

// MarkerAmount finds the period's salary marker in the given month and
// returns its amount, or zero when no marker exists. A match requires
// the exact marker description, the month/year, and the income type;
// the first match wins if duplicates exist.
func MarkerAmount(txs []core.Transaction, p PayPeriod, year int, month time.Month) core.Money {
	spec := p.Spec()
	for _, t := range txs {
		if t.Description == spec.Marker &&
			t.DueParts().SameMonth(year, month) &&
			t.IsIncome() {
			return t.Amount
		}
	}
	return core.Money{}
}

// View derives the period's budget for the given month. Items are the
// month's expense transactions with a due day inside the period's
// range, always excluding the three reserved marker descriptions so a
// misclassified marker cannot appear as a bill. Days outside the range
// are excluded, never clamped.
func View(txs []core.Transaction, p PayPeriod, year int, month time.Month) PeriodView {
	spec := p.Spec()
	view := PeriodView{
		Period: p,
		Income: MarkerAmount(txs, p, year, month),
		Items:  []core.Transaction{},
	}
	for _, t := range txs {
		if t.Type != core.Expense {
			continue
		}
		if core.IsSalaryMarkerDescription(t.Description) {
			continue
		}
		parts := t.DueParts()
		if !parts.SameMonth(year, month) {
			continue
		}
		if parts.Day < spec.DayStart || parts.Day > spec.DayEnd {
			continue
		}
		view.Items = append(view.Items, t)
		view.TotalExpenses.Cents += t.Amount.Cents
	}
	view.Leftover.Cents = view.Income.Cents - view.TotalExpenses.Cents
	return view
}
