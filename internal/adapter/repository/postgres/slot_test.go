package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"

	"github.com/iho/pocketledger/internal/adapter/repository"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestSlotGet(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(getSlotSQL)).
		WithArgs("entries").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`[{"id":"a"}]`))

	slot := newSlotWithQuerier(mockPool)
	got, err := slot.Get(context.Background(), "entries")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("unexpected value %q", got)
	}

	assertExpectations(t, mockPool)
}

func TestSlotGetMissingRow(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(getSlotSQL)).
		WithArgs("entries").
		WillReturnError(pgx.ErrNoRows)

	slot := newSlotWithQuerier(mockPool)
	if _, err := slot.Get(context.Background(), "entries"); !errors.Is(err, repository.ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestSlotSet(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec(regexp.QuoteMeta(setSlotSQL)).
		WithArgs("entries", "[]", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	slot := newSlotWithQuerier(mockPool)
	if err := slot.Set(context.Background(), "entries", []byte("[]")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestSlotSetError(t *testing.T) {
	mockPool := newMockPool(t)
	mockErr := errors.New("disk full")
	mockPool.ExpectExec(regexp.QuoteMeta(setSlotSQL)).
		WithArgs("entries", "[]", pgxmock.AnyArg()).
		WillReturnError(mockErr)

	slot := newSlotWithQuerier(mockPool)
	if err := slot.Set(context.Background(), "entries", []byte("[]")); !errors.Is(err, mockErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}

	assertExpectations(t, mockPool)
}
