package handler

import (
	"context"

	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/usecase"
)

// LedgerService defines the behavior needed by the ledger handlers.
type LedgerService interface {
	Add(ctx context.Context, input domain.EntryInput) (domain.Entry, error)
	Update(ctx context.Context, id string, input domain.EntryInput) (bool, error)
	Delete(ctx context.Context, id string, confirmer usecase.Confirmer) (bool, error)
	Get(id string) (domain.Entry, bool)
	All() []domain.Entry
	Visible() []domain.Entry
	Totals() domain.Totals
	SetFilter(f domain.Filter)

	BeginEdit(id string) (domain.Draft, bool)
	CancelEdit(id string)
	SaveEdit(ctx context.Context, id string, draft domain.Draft) (bool, error)

	SubmitForm(ctx context.Context, form domain.CreateForm) (domain.Entry, error)
	ResetForm()
	Render() usecase.View
}
