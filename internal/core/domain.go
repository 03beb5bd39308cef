package core

import (
	"errors"
	"fmt"
	"strings"
)

// TxType is the closed two-variant transaction type. The remote API is
// case-insensitive about it, so it is parsed and validated once at the
// boundary; internal logic never re-normalizes strings.
type TxType string

const (
	Income  TxType = "INCOME"
	Expense TxType = "EXPENSE"
)

var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidDay       = errors.New("invalid day of month")
	ErrUnknownCategory  = errors.New("unknown category")
)

// ParseTxType normalizes a wire-level type string. Anything that is
// not INCOME is treated as EXPENSE for aggregation purposes, matching
// the API's behavior, but an empty type is rejected.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME":
		return Income, nil
	case "EXPENSE":
		return Expense, nil
	case "":
		return "", ErrInvalidType
	default:
		return Expense, nil
	}
}

// Transaction is the client-side copy of a record owned by the remote
// API. JSON tags follow the API's snake_case wire format.
type Transaction struct {
	ID                 int64   `json:"id"`
	Description        string  `json:"description"`
	Amount             Money   `json:"amount"`
	Type               TxType  `json:"type"`
	CategoryID         int     `json:"category_id"`
	CategoryName       string  `json:"category_name"`
	DueDate            string  `json:"due_date"`
	PaymentDate        *string `json:"payment_date"`
	InstallmentCurrent int     `json:"installment_current,omitempty"`
	InstallmentTotal   int     `json:"installment_total,omitempty"`
}

// Settled reports whether the transaction has been paid. Only settled
// transactions contribute to realized totals and the cash-flow chart.
func (t Transaction) Settled() bool {
	return t.PaymentDate != nil && *t.PaymentDate != ""
}

// IsIncome avoids re-comparing type strings at every call site; the
// Type field is already normalized on ingest.
func (t Transaction) IsIncome() bool {
	return t.Type == Income
}

// DueParts returns the due date's calendar parts.
func (t Transaction) DueParts() DateParts {
	return ParseDateParts(t.DueDate)
}

// Salary marker descriptions. A marker is identified structurally by
// its exact description string; there is no dedicated flag on the API
// schema (see DESIGN.md on the fragility of this).
const (
	MarkerSalaryStart = "Salary 01"
	MarkerSalaryMid   = "Salary 15"
	MarkerExtraEnd    = "Extra 20"
)

// IsSalaryMarkerDescription reports whether the description is one of
// the three reserved marker strings. Markers are excluded from expense
// lists on description alone so a misclassified marker can never show
// up as a bill.
func IsSalaryMarkerDescription(desc string) bool {
	switch desc {
	case MarkerSalaryStart, MarkerSalaryMid, MarkerExtraEnd:
		return true
	}
	return false
}

// IsSalaryMarker reports whether the transaction is a salary marker:
// reserved description plus income type.
func (t Transaction) IsSalaryMarker() bool {
	return t.IsIncome() && IsSalaryMarkerDescription(t.Description)
}

// NormalizeFromWire validates a freshly decoded transaction. The type
// string is parsed into the closed enumeration; records the server
// should never produce are reported rather than silently coerced.
func (t *Transaction) NormalizeFromWire() error {
	typ, err := ParseTxType(string(t.Type))
	if err != nil {
		return fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	t.Type = typ
	return nil
}
