package budget

import (
	"testing"
	"time"

	"moneydash/internal/core"
)

var seriesNow = time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC)

func TestMonthlySeriesAlwaysSixPoints(t *testing.T) {
	points := MonthlySeries(nil, seriesNow)
	if len(points) != SeriesLength {
		t.Fatalf("expected %d points for empty list, got %d", SeriesLength, len(points))
	}
	for _, p := range points {
		if p.Income.Cents != 0 || p.Expenses.Cents != 0 {
			t.Fatalf("empty list produced non-zero point: %+v", p)
		}
	}
}

func TestMonthlySeriesOrderAndLabels(t *testing.T) {
	points := MonthlySeries(nil, seriesNow)
	wantLabels := []string{"abr/2026", "mai/2026", "jun/2026", "jul/2026", "ago/2026", "set/2026"}
	for i, p := range points {
		if p.Label != wantLabels[i] {
			t.Fatalf("point %d label = %q, want %q", i, p.Label, wantLabels[i])
		}
	}
}

func TestMonthlySeriesBucketsSettledOnly(t *testing.T) {
	txs := []core.Transaction{
		paid(core.Transaction{Description: "Paycheck", Amount: core.Money{Cents: 500000}, Type: core.Income, DueDate: "2026-09-01"}),
		paid(core.Transaction{Description: "Rent", Amount: core.Money{Cents: 120000}, Type: core.Expense, DueDate: "2026-07-05"}),
		// Pending: must not appear anywhere.
		{Description: "Internet", Amount: core.Money{Cents: 9900}, Type: core.Expense, DueDate: "2026-09-20"},
		// Outside the window.
		paid(core.Transaction{Description: "Old", Amount: core.Money{Cents: 1000}, Type: core.Expense, DueDate: "2026-03-01"}),
	}
	points := MonthlySeries(txs, seriesNow)

	sep := points[5]
	if sep.Income.Cents != 500000 || sep.Expenses.Cents != 0 {
		t.Fatalf("september point: %+v", sep)
	}
	jul := points[3]
	if jul.Expenses.Cents != 120000 {
		t.Fatalf("july point: %+v", jul)
	}
	var total int64
	for _, p := range points {
		total += p.Income.Cents + p.Expenses.Cents
	}
	if total != 620000 {
		t.Fatalf("window total = %d, want 620000", total)
	}
}

func TestMonthlySeriesCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)
	points := MonthlySeries(nil, now)
	if points[0].Label != "set/2025" || points[5].Label != "fev/2026" {
		t.Fatalf("labels: %q .. %q", points[0].Label, points[5].Label)
	}
}

func TestMonthlySeriesEndOfMonthReference(t *testing.T) {
	// Jan 31 minus N months must not slide into the wrong month.
	now := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	points := MonthlySeries(nil, now)
	wantLabels := []string{"out/2025", "nov/2025", "dez/2025", "jan/2026", "fev/2026", "mar/2026"}
	for i, p := range points {
		if p.Label != wantLabels[i] {
			t.Fatalf("point %d label = %q, want %q", i, p.Label, wantLabels[i])
		}
	}
}

func TestMonthlySeriesIdempotent(t *testing.T) {
	txs := []core.Transaction{
		paid(core.Transaction{Description: "Paycheck", Amount: core.Money{Cents: 1}, Type: core.Income, DueDate: "2026-09-01"}),
	}
	a := MonthlySeries(txs, seriesNow)
	b := MonthlySeries(txs, seriesNow)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("recomputation diverged at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
