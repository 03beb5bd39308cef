// Package core holds the transaction domain model shared by the store,
// the budget projections, and the API client.
//
// This file contains money parsing and formatting. Amounts are kept as
// integer cents (BRL centavos) everywhere inside the process; the
// decimal form only exists at the API and display boundaries.
package core

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Money is a non-negative currency amount in integer cents, except for
// derived values such as a period leftover, which may go negative.
type Money struct {
	Cents int64
}

// ErrInvalidAmount is returned for unparseable or non-positive user
// supplied amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseDecimalToCents converts a user-entered decimal string to cents
// with half-up rounding on the third decimal place. Both dot and comma
// separators are accepted. Zero and negative amounts are rejected:
// transaction amounts are magnitudes, sign comes from the type.
func ParseDecimalToCents(s string) (int64, error) {
	cents, err := parseCents(s)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// parseCents is the permissive variant used at the wire boundary,
// where a zero amount is representable.
func parseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// MarshalJSON renders the amount as a plain JSON number with two
// decimal places, the form the remote API stores.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.decimalString()), nil
}

// UnmarshalJSON accepts the amount as a JSON number or a quoted
// decimal string; some backends serialize numerics either way.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		m.Cents = 0
		return nil
	}
	cents, err := parseCents(s)
	if err != nil {
		return err
	}
	m.Cents = cents
	return nil
}

func (m Money) decimalString() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." +
		pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// FormatBRL formats the amount as a Brazilian Real currency string,
// e.g. "R$ 12,34" or "-R$ 0,50".
func (m Money) FormatBRL() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := "R$ " + strconv.FormatInt(cents/100, 10) + "," + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// Validate rejects non-positive amounts for user-created transactions.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
