package usecase

import (
	"context"

	"github.com/iho/pocketledger/internal/domain"
)

// BeginEdit switches a row into Editing and captures its current values as the
// draft. Several rows may be edited at the same time. Returns false if the entry
// does not exist.
func (uc *LedgerUseCase) BeginEdit(id string) (domain.Draft, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := domain.IndexOf(uc.entries, id)
	if idx == -1 {
		return domain.Draft{}, false
	}

	draft := domain.DraftFromEntry(uc.entries[idx])
	uc.drafts[id] = draft

	return draft, true
}

// Draft returns the draft of a row in Editing.
func (uc *LedgerUseCase) Draft(id string) (domain.Draft, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	d, ok := uc.drafts[id]
	return d, ok
}

// IsEditing reports whether the row is in Editing.
func (uc *LedgerUseCase) IsEditing(id string) bool {
	_, ok := uc.Draft(id)
	return ok
}

// ChangeDraft stores in-progress values for a row in Editing.
func (uc *LedgerUseCase) ChangeDraft(id string, draft domain.Draft) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.drafts[id]; !ok {
		return domain.ErrNotEditing
	}
	uc.drafts[id] = draft

	return nil
}

// CancelEdit discards the draft; the row shows its stored values again.
func (uc *LedgerUseCase) CancelEdit(id string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	delete(uc.drafts, id)
}

// SaveEdit validates draft and commits it through Update. On validation failure
// the draft keeps the attempted values and the row stays in Editing. If the entry
// disappeared meanwhile the draft is dropped without error.
func (uc *LedgerUseCase) SaveEdit(ctx context.Context, id string, draft domain.Draft) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.drafts[id]; !ok {
		if domain.IndexOf(uc.entries, id) == -1 {
			return false, nil
		}
		return false, domain.ErrNotEditing
	}
	uc.drafts[id] = draft

	updated, err := uc.update(ctx, id, draft.Input())
	if err != nil {
		return false, err
	}

	delete(uc.drafts, id)

	return updated, nil
}

// Editing returns the ids of rows currently in Editing.
func (uc *LedgerUseCase) Editing() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	ids := make([]string, 0, len(uc.drafts))
	for _, e := range uc.entries {
		if _, ok := uc.drafts[e.ID]; ok {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
