package store

import (
	"context"
	"fmt"

	"moneydash/internal/amqp"
	"moneydash/internal/api"
	"moneydash/internal/budget"
	"moneydash/internal/core"
)

// UpsertSalary creates, replaces, or removes the salary marker for a
// pay period in the current month. The marker is never updated in
// place: an existing one is deleted and, for a non-zero amount, a
// fresh one is created on the period's anchor day, already settled.
// The marker's id therefore changes on every edit.
func (s *Store) UpsertSalary(ctx context.Context, p budget.PayPeriod, amount core.Money) error {
	if amount.Cents < 0 {
		return core.ErrInvalidAmount
	}
	spec := p.Spec()
	now := s.Now()

	// Existence is checked by description and month alone; a marker
	// with a mangled type or category still gets replaced.
	var existing *core.Transaction
	for _, t := range s.Transactions() {
		if t.Description == spec.Marker && t.DueParts().SameMonth(now.Year(), now.Month()) {
			tt := t
			existing = &tt
			break
		}
	}

	if existing == nil && amount.Cents == 0 {
		return nil
	}

	if existing != nil {
		if err := s.api.DeleteTransaction(ctx, existing.ID); err != nil {
			return fmt.Errorf("delete salary marker %d: %w", existing.ID, err)
		}
		s.publish(ctx, amqp.NewTransactionEvent(amqp.EventDeleted, existing.ID, spec.Marker))
	}

	if amount.Cents > 0 {
		categoryID, err := core.CategoryIDByName(spec.Category)
		if err != nil {
			return err
		}
		req := api.CreateTransactionRequest{
			CategoryID:  categoryID,
			Description: spec.Marker,
			Amount:      amount,
			DueDate:     core.FormatAPIDate(now.Year(), now.Month(), spec.AnchorDay),
			IsPaid:      true, // salary is received, not pending
		}
		if err := s.api.CreateTransaction(ctx, req); err != nil {
			return fmt.Errorf("create salary marker: %w", err)
		}
		s.publish(ctx, amqp.NewTransactionEvent(amqp.EventCreated, 0, spec.Marker))
	}

	return s.refreshAfterMutation(ctx)
}

// AddFixedExpense creates an unpaid expense in the Housing category
// due on the given day of the current month. Duplicate names are not
// checked; two bills may legitimately share one description.
func (s *Store) AddFixedExpense(ctx context.Context, name string, amount core.Money, day int) error {
	if day < 1 || day > 31 {
		return core.ErrInvalidDay
	}
	now := s.Now()
	categoryID, err := core.CategoryIDByName(core.CategoryHousing)
	if err != nil {
		return err
	}
	return s.Create(ctx, api.CreateTransactionRequest{
		CategoryID:  categoryID,
		Description: name,
		Amount:      amount,
		DueDate:     core.FormatAPIDate(now.Year(), now.Month(), day),
		IsPaid:      false,
	})
}
