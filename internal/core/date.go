package core

import (
	"fmt"
	"strconv"
	"time"
)

// DateParts is a calendar day extracted from an API date string.
// Month is 1-indexed (January == 1). The zero-value semantics of the
// sentinel (all fields -1) guarantee it never matches a real month or
// day filter.
type DateParts struct {
	Year  int
	Month int
	Day   int
}

// SentinelDateParts is returned for empty or unparseable date strings.
// It compares unequal to every real (year, month, day) triple.
var SentinelDateParts = DateParts{Year: -1, Month: -1, Day: -1}

// ParseDateParts reads the calendar day out of a date or date-time
// string whose first 10 characters are YYYY-MM-DD.
//
// It deliberately avoids time.Parse and any timezone handling: due
// dates are wall-clock calendar days, and a general-purpose parser
// applying a UTC offset would silently move transactions across month
// boundaries near midnight. Everything that buckets transactions by
// month or day goes through this function.
func ParseDateParts(s string) DateParts {
	if len(s) < 10 {
		return SentinelDateParts
	}
	s = s[:10]
	if s[4] != '-' || s[7] != '-' {
		return SentinelDateParts
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return SentinelDateParts
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil {
		return SentinelDateParts
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil {
		return SentinelDateParts
	}
	return DateParts{Year: year, Month: month, Day: day}
}

// IsSentinel reports whether the parts came from an unparseable input.
func (d DateParts) IsSentinel() bool {
	return d.Year < 0
}

// SameMonth reports whether the parts fall in the given year and month.
func (d DateParts) SameMonth(year int, month time.Month) bool {
	return d.Year == year && d.Month == int(month)
}

// FormatAPIDate renders a calendar day as the YYYY-MM-DD string the
// remote API expects, without any timezone conversion.
func FormatAPIDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// SafeAPIDate appends the fixed midday time component to a bare date.
// The remote server normalizes timestamps to its own timezone; pinning
// the time to noon keeps the calendar day stable on both sides. Inputs
// that already carry a time component are returned unchanged.
func SafeAPIDate(date string) string {
	for i := 0; i < len(date); i++ {
		if date[i] == 'T' {
			return date
		}
	}
	return date + "T12:00:00"
}

// Portuguese month names, matching the account's pt-BR locale.
var (
	shortMonthNames = [...]string{
		"jan", "fev", "mar", "abr", "mai", "jun",
		"jul", "ago", "set", "out", "nov", "dez",
	}
	longMonthNames = [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
)

// ShortMonthLabel returns a chart label such as "jan/2026".
func ShortMonthLabel(year int, month time.Month) string {
	return shortMonthNames[int(month)-1] + "/" + strconv.Itoa(year)
}

// MonthLabel returns a display label such as "Janeiro/2026".
func MonthLabel(year int, month time.Month) string {
	return longMonthNames[int(month)-1] + "/" + strconv.Itoa(year)
}
