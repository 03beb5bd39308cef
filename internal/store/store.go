// Package store holds the authoritative in-memory transaction list
// for the signed-in user and orchestrates every mutation against the
// remote API. All projections (summary, chart series, budget views)
// are recomputed from the cached list on demand; after a mutation the
// list is refetched wholesale so the server's state always wins.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"moneydash/internal/amqp"
	"moneydash/internal/api"
	"moneydash/internal/budget"
	"moneydash/internal/core"
)

// APIClient is the remote API surface the store depends on.
type APIClient interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, req api.CreateTransactionRequest) error
	SetPaid(ctx context.Context, id int64, paid bool) error
	DeleteTransaction(ctx context.Context, id int64) error
}

// EventPublisher receives change notifications after successful
// mutations. May be nil; publishing failures never fail a mutation.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, event *amqp.TransactionEvent) error
}

// Snapshot persists the last fetched list locally. May be nil.
type Snapshot interface {
	ReplaceAll(ctx context.Context, txs []core.Transaction, fetchedAt time.Time) error
	LoadAll(ctx context.Context) ([]core.Transaction, time.Time, error)
}

// Store is the single source of truth for the dashboard. Safe for
// concurrent use by the local HTTP server.
type Store struct {
	api    APIClient
	events EventPublisher
	snap   Snapshot

	// Now is the reference clock for "current month" decisions;
	// overridable in tests.
	Now func() time.Time

	sf singleflight.Group

	mu       sync.RWMutex
	txs      []core.Transaction
	lastSync time.Time
}

// New builds a store around the API client. events and snap are
// optional and may be nil.
func New(client APIClient, events EventPublisher, snap Snapshot) *Store {
	return &Store{
		api:    client,
		events: events,
		snap:   snap,
		Now:    time.Now,
	}
}

// RestoreSnapshot seeds the list from the local snapshot, so a start
// during an API outage shows the last known data instead of nothing.
// No-op without a snapshot or when the snapshot is empty.
func (s *Store) RestoreSnapshot(ctx context.Context) (int, error) {
	if s.snap == nil {
		return 0, nil
	}
	txs, fetchedAt, err := s.snap.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load snapshot: %w", err)
	}
	if fetchedAt.IsZero() {
		return 0, nil
	}
	s.mu.Lock()
	s.txs = txs
	s.lastSync = fetchedAt
	s.mu.Unlock()
	return len(txs), nil
}

// Refresh replaces the cached list with a wholesale fetch. Concurrent
// refreshes are collapsed into one API call. On failure the list keeps
// its last known state.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.sf.Do("refresh", func() (any, error) {
		return nil, s.fetch(ctx)
	})
	return err
}

// refreshAfterMutation guarantees read-after-write: any in-flight
// refresh that started before the mutation's response must not be
// joined, so the collapsed entry is dropped first.
func (s *Store) refreshAfterMutation(ctx context.Context) error {
	s.sf.Forget("refresh")
	return s.Refresh(ctx)
}

func (s *Store) fetch(ctx context.Context) error {
	txs, err := s.api.ListTransactions(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Transaction fetch failed, keeping cached list", "error", err)
		return fmt.Errorf("list transactions: %w", err)
	}
	now := s.Now()

	s.mu.Lock()
	s.txs = txs
	s.lastSync = now
	s.mu.Unlock()

	if s.snap != nil {
		if err := s.snap.ReplaceAll(ctx, txs, now); err != nil {
			slog.WarnContext(ctx, "Snapshot persist failed", "error", err)
		}
	}
	return nil
}

// Transactions returns a copy of the cached list.
func (s *Store) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.txs...)
}

// LastSync reports when the cached list was last confirmed against
// the API (or loaded from the snapshot).
func (s *Store) LastSync() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}

// Summary derives the realized running totals.
func (s *Store) Summary() budget.Summary {
	return budget.Summarize(s.Transactions())
}

// MonthlySeries derives the trailing six-month cash-flow series.
func (s *Store) MonthlySeries() []budget.ChartPoint {
	return budget.MonthlySeries(s.Transactions(), s.Now())
}

// PeriodView derives the budget view for a pay period of the current
// month.
func (s *Store) PeriodView(p budget.PayPeriod) budget.PeriodView {
	now := s.Now()
	return budget.View(s.Transactions(), p, now.Year(), now.Month())
}

// SalaryFor returns the amount of the period's salary marker in the
// current month, zero when absent.
func (s *Store) SalaryFor(p budget.PayPeriod) core.Money {
	now := s.Now()
	return budget.MarkerAmount(s.Transactions(), p, now.Year(), now.Month())
}

// RecentSettled returns the most recently paid transactions, newest
// first, at most limit entries.
func (s *Store) RecentSettled(limit int) []core.Transaction {
	txs := s.Transactions()
	settled := txs[:0]
	for _, t := range txs {
		if t.Settled() {
			settled = append(settled, t)
		}
	}
	// ISO timestamps order lexicographically, so no parsing needed.
	sort.SliceStable(settled, func(i, j int) bool {
		return *settled[i].PaymentDate > *settled[j].PaymentDate
	})
	if len(settled) > limit {
		settled = settled[:limit]
	}
	return settled
}

// Create posts a new transaction and refetches. The category must
// resolve against the fixed table before any API call is made.
func (s *Store) Create(ctx context.Context, req api.CreateTransactionRequest) error {
	if err := validateCreate(req); err != nil {
		return err
	}
	if err := s.api.CreateTransaction(ctx, req); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	s.publish(ctx, amqp.NewTransactionEvent(amqp.EventCreated, 0, req.Description))
	return s.refreshAfterMutation(ctx)
}

// Delete removes the transaction from the visible list immediately and
// then issues the API delete. A failed delete surfaces as an error and
// is corrected by the next successful refetch.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	kept := s.txs[:0]
	var removed *core.Transaction
	for _, t := range s.txs {
		if t.ID == id {
			tt := t
			removed = &tt
			continue
		}
		kept = append(kept, t)
	}
	s.txs = kept
	s.mu.Unlock()

	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	desc := ""
	if removed != nil {
		desc = removed.Description
	}
	s.publish(ctx, amqp.NewTransactionEvent(amqp.EventDeleted, id, desc))
	return nil
}

// TogglePaid flips a transaction's settlement: optimistic local flip,
// API call, then an unconditional refetch so the server state wins
// whether the call succeeded or not.
func (s *Store) TogglePaid(ctx context.Context, id int64) error {
	s.mu.Lock()
	var target *core.Transaction
	for i := range s.txs {
		if s.txs[i].ID == id {
			target = &s.txs[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return fmt.Errorf("transaction %d not in cached list", id)
	}
	nowPaid := !target.Settled()
	if nowPaid {
		stamp := s.Now().UTC().Format(time.RFC3339)
		target.PaymentDate = &stamp
	} else {
		target.PaymentDate = nil
	}
	desc := target.Description
	s.mu.Unlock()

	apiErr := s.api.SetPaid(ctx, id, nowPaid)
	refreshErr := s.refreshAfterMutation(ctx)

	if apiErr != nil {
		return fmt.Errorf("toggle transaction %d: %w", id, apiErr)
	}
	kind := amqp.EventPaid
	if !nowPaid {
		kind = amqp.EventUnpaid
	}
	s.publish(ctx, amqp.NewTransactionEvent(kind, id, desc))
	return refreshErr
}

func validateCreate(req api.CreateTransactionRequest) error {
	if req.Description == "" {
		return core.ErrEmptyDescription
	}
	if err := req.Amount.Validate(); err != nil {
		return err
	}
	if _, err := core.CategoryByID(req.CategoryID); err != nil {
		return err
	}
	return nil
}

func (s *Store) publish(ctx context.Context, event *amqp.TransactionEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "Event publish failed",
			"kind", event.Kind,
			"transaction_id", event.TransactionID,
			"error", err)
	}
}
