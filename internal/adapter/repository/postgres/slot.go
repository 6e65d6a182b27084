package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/pocketledger/internal/adapter/repository"
)

const (
	getSlotSQL = `SELECT value FROM ledger_slots WHERE key = $1`
	setSlotSQL = `INSERT INTO ledger_slots (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Slot implements repository.Slot as a row in the ledger_slots table.
type Slot struct {
	db  pgxQuerier
	now func() time.Time
}

// NewSlot creates a new Slot.
func NewSlot(pool *pgxpool.Pool) *Slot {
	return newSlotWithQuerier(pool)
}

func newSlotWithQuerier(db pgxQuerier) *Slot {
	return &Slot{db: db, now: time.Now}
}

// Get returns the stored value, or repository.ErrSlotEmpty when the row is missing.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(ctx, getSlotSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", key, err)
	}

	return []byte(value), nil
}

// Set upserts the value.
func (s *Slot) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.Exec(ctx, setSlotSQL, key, string(value), s.now().UTC()); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}
