package usecase

import (
	"context"

	"github.com/iho/pocketledger/internal/domain"
)

// EntryStorage persists the whole entry collection in one slot.
type EntryStorage interface {
	// Load never fails: absent or malformed data yields an empty collection.
	Load(ctx context.Context) []domain.Entry
	// Save replaces the persisted collection.
	Save(ctx context.Context, entries []domain.Entry) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Confirmer asks the user a yes/no question synchronously.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Observer receives notifications about ledger activity, e.g. for metrics.
type Observer interface {
	EntryMutated(op string)
	ValidationFailed(reason string)
	StorageWriteFailed()
	TotalsChanged(totals domain.Totals)
}

type nopObserver struct{}

func (nopObserver) EntryMutated(string)         {}
func (nopObserver) ValidationFailed(string)     {}
func (nopObserver) StorageWriteFailed()         {}
func (nopObserver) TotalsChanged(domain.Totals) {}
