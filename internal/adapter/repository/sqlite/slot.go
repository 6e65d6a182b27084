package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iho/pocketledger/internal/adapter/repository"
)

const (
	getSlotSQL = `SELECT value FROM ledger_slots WHERE key = ?`
	setSlotSQL = `INSERT INTO ledger_slots (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// Slot implements repository.Slot as a row in the ledger_slots table.
type Slot struct {
	db *sql.DB
}

// NewSlot creates a new Slot. The schema must already be migrated.
func NewSlot(db *sql.DB) *Slot {
	return &Slot{db: db}
}

// Get returns the stored value, or repository.ErrSlotEmpty when the row is missing.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getSlotSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return []byte(value), nil
}

// Set upserts the value.
func (s *Slot) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, setSlotSQL, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}
