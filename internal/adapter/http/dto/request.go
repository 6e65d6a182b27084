package dto

import (
	"github.com/iho/pocketledger/internal/domain"
)

// EntryRequest represents a request to create or update an entry. Amount is
// kept as text so the validator sees exactly what was typed.
type EntryRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// ToInput converts to validator input, clamping the description to its
// maximum length.
func (r *EntryRequest) ToInput() domain.EntryInput {
	return domain.EntryInput{
		Type:        r.Type,
		Description: domain.ClampDescription(r.Description),
		Amount:      r.Amount,
	}
}

// ToDraft converts to an inline edit draft.
func (r *EntryRequest) ToDraft() domain.Draft {
	in := r.ToInput()
	return domain.Draft{Type: in.Type, Description: in.Description, Amount: in.Amount}
}

// FilterRequest represents a request to change the active filter.
type FilterRequest struct {
	Filter string `json:"filter"`
}
