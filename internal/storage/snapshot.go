// Package storage keeps a local SQLite snapshot of the last
// transaction list successfully fetched from the API. It exists so a
// restart during an API outage still shows the last known data; the
// remote API stays authoritative and the snapshot is replaced
// wholesale after every successful refetch.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"moneydash/internal/core"

	_ "modernc.org/sqlite"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(dbPath string) (*SnapshotRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SnapshotRepository{db: db}, nil
}

func (r *SnapshotRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReplaceAll swaps the snapshot for the given list in one transaction.
func (r *SnapshotRepository) ReplaceAll(ctx context.Context, txs []core.Transaction, fetchedAt time.Time) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	const insert = `INSERT INTO transactions
		(id, description, amount_cents, tx_type, category_id, category_name,
		 due_date, payment_date, installment_current, installment_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, t := range txs {
		var paymentDate sql.NullString
		if t.PaymentDate != nil {
			paymentDate = sql.NullString{String: *t.PaymentDate, Valid: true}
		}
		if _, err := dbTx.ExecContext(ctx, insert,
			t.ID, t.Description, t.Amount.Cents, string(t.Type),
			t.CategoryID, t.CategoryName, t.DueDate, paymentDate,
			t.InstallmentCurrent, t.InstallmentTotal); err != nil {
			return fmt.Errorf("insert transaction %d: %w", t.ID, err)
		}
	}

	const meta = `INSERT INTO snapshot_meta (id, fetched_at) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET fetched_at = excluded.fetched_at`
	if _, err := dbTx.ExecContext(ctx, meta, fetchedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("update snapshot meta: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot replaced", "count", len(txs))
	return nil
}

// LoadAll returns the snapshot contents and when they were fetched.
// An empty snapshot yields an empty list and a zero time.
func (r *SnapshotRepository) LoadAll(ctx context.Context) ([]core.Transaction, time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, description, amount_cents, tx_type, category_id, category_name,
		due_date, payment_date, installment_current, installment_total
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			t           core.Transaction
			cents       int64
			txType      string
			paymentDate sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Description, &cents, &txType,
			&t.CategoryID, &t.CategoryName, &t.DueDate, &paymentDate,
			&t.InstallmentCurrent, &t.InstallmentTotal); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount = core.Money{Cents: cents}
		t.Type = core.TxType(txType)
		if paymentDate.Valid {
			t.PaymentDate = &paymentDate.String
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate snapshot: %w", err)
	}

	var fetchedAt time.Time
	var raw string
	err = r.db.QueryRowContext(ctx, `SELECT fetched_at FROM snapshot_meta WHERE id = 1`).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		// Never written; zero time signals no snapshot.
	case err != nil:
		return nil, time.Time{}, fmt.Errorf("query snapshot meta: %w", err)
	default:
		fetchedAt, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("parse fetched_at: %w", err)
		}
	}

	return txs, fetchedAt, nil
}
