package usecase

import (
	"context"

	"github.com/iho/pocketledger/internal/domain"
)

// Form returns the current state of the create form.
func (uc *LedgerUseCase) Form() domain.CreateForm {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.form
}

// SubmitForm adds an entry from the create form. A rejected submission keeps the
// form values; an accepted one clears them but keeps the chosen type.
func (uc *LedgerUseCase) SubmitForm(ctx context.Context, form domain.CreateForm) (domain.Entry, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.form = form

	entry, err := uc.add(ctx, form.Input())
	if err != nil {
		return domain.Entry{}, err
	}

	uc.form = form.AfterSubmit()

	return entry, nil
}

// ResetForm restores the blank form with income selected.
func (uc *LedgerUseCase) ResetForm() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.form = domain.NewCreateForm()
}
