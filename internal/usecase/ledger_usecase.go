package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iho/pocketledger/internal/domain"
)

// LedgerUseCase owns the application state: the entry collection, the active
// filter, inline edit drafts and the create form. Every action runs under one
// lock so concurrent adapters still observe one synchronous step per action.
type LedgerUseCase struct {
	mu sync.Mutex

	storage  EntryStorage
	idGen    IDGenerator
	now      func() time.Time
	observer Observer

	entries []domain.Entry
	filter  domain.Filter
	drafts  map[string]domain.Draft
	form    domain.CreateForm
}

// Option configures a LedgerUseCase.
type Option func(*LedgerUseCase)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(uc *LedgerUseCase) {
		uc.now = now
	}
}

// WithObserver registers an activity observer.
func WithObserver(o Observer) Option {
	return func(uc *LedgerUseCase) {
		uc.observer = o
	}
}

// NewLedgerUseCase creates a LedgerUseCase and loads the persisted collection.
func NewLedgerUseCase(ctx context.Context, storage EntryStorage, idGen IDGenerator, opts ...Option) *LedgerUseCase {
	uc := &LedgerUseCase{
		storage:  storage,
		idGen:    idGen,
		now:      time.Now,
		observer: nopObserver{},
		filter:   domain.FilterAll,
		drafts:   make(map[string]domain.Draft),
		form:     domain.NewCreateForm(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.entries = storage.Load(ctx)
	if uc.entries == nil {
		uc.entries = []domain.Entry{}
	}
	uc.observer.TotalsChanged(domain.ComputeTotals(uc.entries))

	return uc
}

// Add validates input and prepends a new entry.
func (uc *LedgerUseCase) Add(ctx context.Context, input domain.EntryInput) (domain.Entry, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.add(ctx, input)
}

func (uc *LedgerUseCase) add(ctx context.Context, input domain.EntryInput) (domain.Entry, error) {
	valid, err := uc.validate(input)
	if err != nil {
		return domain.Entry{}, err
	}

	entry := domain.Entry{
		ID:          uc.idGen.Generate(),
		Type:        valid.Type,
		Description: valid.Description,
		Amount:      valid.Amount,
		CreatedAt:   time.UnixMilli(uc.now().UnixMilli()),
	}

	next := make([]domain.Entry, 0, len(uc.entries)+1)
	next = append(next, entry)
	next = append(next, uc.entries...)

	if err := uc.commit(ctx, next, OpAdd); err != nil {
		return domain.Entry{}, err
	}

	return entry, nil
}

// Update replaces the mutable fields of entry id in place. A missing id is a
// silent no-op; the returned bool reports whether anything changed.
func (uc *LedgerUseCase) Update(ctx context.Context, id string, input domain.EntryInput) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.update(ctx, id, input)
}

func (uc *LedgerUseCase) update(ctx context.Context, id string, input domain.EntryInput) (bool, error) {
	valid, err := uc.validate(input)
	if err != nil {
		return false, err
	}

	idx := domain.IndexOf(uc.entries, id)
	if idx == -1 {
		return false, nil
	}

	next := domain.CloneEntries(uc.entries)
	next[idx].Type = valid.Type
	next[idx].Description = valid.Description
	next[idx].Amount = valid.Amount

	if err := uc.commit(ctx, next, OpUpdate); err != nil {
		return false, err
	}

	return true, nil
}

// Remove deletes entry id. A missing id is a no-op.
func (uc *LedgerUseCase) Remove(ctx context.Context, id string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.remove(ctx, id)
}

func (uc *LedgerUseCase) remove(ctx context.Context, id string) (bool, error) {
	if domain.IndexOf(uc.entries, id) == -1 {
		delete(uc.drafts, id)
		return false, nil
	}

	next := make([]domain.Entry, 0, len(uc.entries))
	for _, e := range uc.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}

	if err := uc.commit(ctx, next, OpRemove); err != nil {
		return false, err
	}
	delete(uc.drafts, id)

	return true, nil
}

// Delete asks confirmer before removing entry id. Declining leaves state unchanged.
func (uc *LedgerUseCase) Delete(ctx context.Context, id string, confirmer Confirmer) (bool, error) {
	if confirmer == nil || !confirmer.Confirm(DeletePrompt) {
		return false, domain.ErrConfirmationRequired
	}
	return uc.Remove(ctx, id)
}

// All returns the full collection, newest first.
func (uc *LedgerUseCase) All() []domain.Entry {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return domain.CloneEntries(uc.entries)
}

// Get returns the entry with id.
func (uc *LedgerUseCase) Get(id string) (domain.Entry, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := domain.IndexOf(uc.entries, id)
	if idx == -1 {
		return domain.Entry{}, false
	}
	return uc.entries[idx], true
}

// Totals computes the aggregates over the entire collection.
func (uc *LedgerUseCase) Totals() domain.Totals {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return domain.ComputeTotals(uc.entries)
}

// Filter returns the active filter.
func (uc *LedgerUseCase) Filter() domain.Filter {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.filter
}

// SetFilter changes the active filter.
func (uc *LedgerUseCase) SetFilter(f domain.Filter) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.filter = f
}

// Visible returns the entries shown under the active filter.
func (uc *LedgerUseCase) Visible() []domain.Entry {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return domain.Visible(uc.entries, uc.filter)
}

func (uc *LedgerUseCase) validate(input domain.EntryInput) (domain.ValidEntry, error) {
	valid, err := domain.ValidateEntry(input)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			uc.observer.ValidationFailed(verr.Reason())
		}
		return domain.ValidEntry{}, err
	}
	return valid, nil
}

// commit persists next and only then makes it the current collection.
func (uc *LedgerUseCase) commit(ctx context.Context, next []domain.Entry, op string) error {
	if err := uc.storage.Save(ctx, next); err != nil {
		uc.observer.StorageWriteFailed()
		if errors.Is(err, domain.ErrStorageWrite) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}

	uc.entries = next
	uc.observer.EntryMutated(op)
	uc.observer.TotalsChanged(domain.ComputeTotals(next))

	return nil
}
