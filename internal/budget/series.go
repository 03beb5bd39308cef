package budget

import (
	"time"

	"moneydash/internal/core"
)

// SeriesLength is the fixed size of the monthly cash-flow series: the
// current month and the five before it.
const SeriesLength = 6

// ChartPoint is one month of realized cash flow.
type ChartPoint struct {
	Label    string     `json:"label"`
	Year     int        `json:"year"`
	Month    int        `json:"month"`
	Income   core.Money `json:"income"`
	Expenses core.Money `json:"expenses"`
}

// MonthlySeries buckets settled transactions into the trailing
// six-month window ending at now's month. The result always has
// exactly SeriesLength points in chronological order; months without
// transactions yield zero points rather than being omitted. Same list,
// same reference time, same output.
func MonthlySeries(txs []core.Transaction, now time.Time) []ChartPoint {
	points := make([]ChartPoint, 0, SeriesLength)
	for i := SeriesLength - 1; i >= 0; i-- {
		// Normalizing to the first of the month keeps AddDate from
		// overflowing short months (e.g. Mar 31 minus one month).
		ref := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, -i, 0)
		year, month := ref.Year(), ref.Month()

		p := ChartPoint{
			Label: core.ShortMonthLabel(year, month),
			Year:  year,
			Month: int(month),
		}
		for _, t := range txs {
			if !t.Settled() || !t.DueParts().SameMonth(year, month) {
				continue
			}
			if t.IsIncome() {
				p.Income.Cents += t.Amount.Cents
			} else {
				p.Expenses.Cents += t.Amount.Cents
			}
		}
		points = append(points, p)
	}
	return points
}
