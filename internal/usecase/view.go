package usecase

import "github.com/iho/pocketledger/internal/domain"

// Row is one visible entry, either displayed or being edited.
type Row struct {
	Entry   domain.Entry
	Editing bool
	Draft   domain.Draft
}

// View is everything a renderer needs to draw the widget.
type View struct {
	Totals domain.Totals
	Filter domain.Filter
	Form   domain.CreateForm
	Rows   []Row
	// Empty is true when the filter leaves nothing to show; renderers draw the
	// placeholder instead of the list.
	Empty bool
}

// BuildView is the pure projection from state to view.
func BuildView(entries []domain.Entry, filter domain.Filter, drafts map[string]domain.Draft, form domain.CreateForm) View {
	visible := domain.Visible(entries, filter)

	rows := make([]Row, 0, len(visible))
	for _, e := range visible {
		row := Row{Entry: e}
		if d, ok := drafts[e.ID]; ok {
			row.Editing = true
			row.Draft = d
		}
		rows = append(rows, row)
	}

	return View{
		Totals: domain.ComputeTotals(entries),
		Filter: filter,
		Form:   form,
		Rows:   rows,
		Empty:  len(rows) == 0,
	}
}

// Render snapshots the current state into a View. Calling it repeatedly without
// intervening actions yields the same result.
func (uc *LedgerUseCase) Render() View {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return BuildView(uc.entries, uc.filter, uc.drafts, uc.form)
}
