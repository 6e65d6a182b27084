package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/usecase"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	AmountFormatted string          `json:"amount_formatted"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e domain.Entry, f domain.MoneyFormatter) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		Type:            string(e.Type),
		Description:     e.Description,
		Amount:          e.Amount,
		AmountFormatted: f.Format(e.Amount),
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []domain.Entry, f domain.MoneyFormatter) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e, f)
	}
	return result
}

// TotalsResponse represents the derived totals.
type TotalsResponse struct {
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Net              decimal.Decimal `json:"net"`
	IncomeFormatted  string          `json:"income_formatted"`
	ExpenseFormatted string          `json:"expense_formatted"`
	NetFormatted     string          `json:"net_formatted"`
	NetTone          string          `json:"net_tone"`
}

// TotalsFromDomain converts totals to a response.
func TotalsFromDomain(t domain.Totals, f domain.MoneyFormatter) *TotalsResponse {
	return &TotalsResponse{
		Income:           t.Income,
		Expense:          t.Expense,
		Net:              t.Net,
		IncomeFormatted:  f.Format(t.Income),
		ExpenseFormatted: f.Format(t.Expense),
		NetFormatted:     f.Format(t.Net),
		NetTone:          string(t.Tone()),
	}
}

// DraftResponse represents the values of a row being edited.
type DraftResponse struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// DraftFromDomain converts a draft to a response.
func DraftFromDomain(d domain.Draft) *DraftResponse {
	return &DraftResponse{Type: d.Type, Description: d.Description, Amount: d.Amount}
}

// RowResponse represents one visible row of the widget.
type RowResponse struct {
	Entry   *EntryResponse `json:"entry"`
	Editing bool           `json:"editing"`
	Draft   *DraftResponse `json:"draft,omitempty"`
}

// FormResponse represents the create form state.
type FormResponse struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// WidgetResponse is the full rendered view.
type WidgetResponse struct {
	Totals *TotalsResponse `json:"totals"`
	Filter string          `json:"filter"`
	Form   FormResponse    `json:"form"`
	Rows   []RowResponse   `json:"rows"`
	Empty  bool            `json:"empty"`
}

// WidgetFromView converts a view to a response.
func WidgetFromView(v usecase.View, f domain.MoneyFormatter) *WidgetResponse {
	rows := make([]RowResponse, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = RowResponse{Entry: EntryFromDomain(r.Entry, f), Editing: r.Editing}
		if r.Editing {
			rows[i].Draft = DraftFromDomain(r.Draft)
		}
	}

	return &WidgetResponse{
		Totals: TotalsFromDomain(v.Totals, f),
		Filter: string(v.Filter),
		Form: FormResponse{
			Type:        v.Form.Type,
			Description: v.Form.Description,
			Amount:      v.Form.Amount,
		},
		Rows:  rows,
		Empty: v.Empty,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
