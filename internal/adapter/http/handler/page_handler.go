package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/adapter/http/web"
	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/usecase"
)

// PageHandler serves the server-rendered widget. Successful actions redirect
// back to the page; rejected ones re-render it with a message.
type PageHandler struct {
	ledger    LedgerService
	templates *template.Template
	logger    zerolog.Logger
}

type pageData struct {
	View           usecase.View
	Message        string
	Filters        []domain.Filter
	MaxDescription int
	DeletePrompt   string
}

// NewPageHandler parses the embedded templates and creates a PageHandler.
func NewPageHandler(ledger LedgerService, formatter domain.MoneyFormatter, logger zerolog.Logger) (*PageHandler, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return formatter.Format(d) },
		"filterLabel": func(f domain.Filter) string {
			switch f {
			case domain.FilterIncome:
				return "Income"
			case domain.FilterExpense:
				return "Expense"
			default:
				return "All"
			}
		},
	}

	t, err := template.New("widget").Funcs(funcs).ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &PageHandler{
		ledger:    ledger,
		templates: t,
		logger:    logger.With().Str("component", "page_handler").Logger(),
	}, nil
}

// Show renders the widget. A filter query parameter changes the active filter.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("filter"); raw != "" {
		filter, err := domain.ParseFilter(raw)
		if err != nil {
			h.render(w, http.StatusBadRequest, err.Error())
			return
		}
		h.ledger.SetFilter(filter)
	}

	h.render(w, http.StatusOK, "")
}

// Create submits the add-entry form.
func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	form := domain.CreateForm{
		Type:        r.PostForm.Get("type"),
		Description: domain.ClampDescription(r.PostForm.Get("description")),
		Amount:      r.PostForm.Get("amount"),
	}

	if _, err := h.ledger.SubmitForm(r.Context(), form); err != nil {
		h.fail(w, err)
		return
	}

	h.redirect(w, r)
}

// Reset restores the blank create form.
func (h *PageHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.ledger.ResetForm()
	h.redirect(w, r)
}

// BeginEdit switches a row into Editing.
func (h *PageHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	h.ledger.BeginEdit(chi.URLParam(r, "id"))
	h.redirect(w, r)
}

// CancelEdit discards a row's draft.
func (h *PageHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	h.ledger.CancelEdit(chi.URLParam(r, "id"))
	h.redirect(w, r)
}

// SaveEdit submits a row's inline edit form.
func (h *PageHandler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	draft := domain.Draft{
		Type:        r.PostForm.Get("type"),
		Description: domain.ClampDescription(r.PostForm.Get("description")),
		Amount:      r.PostForm.Get("amount"),
	}

	_, err := h.ledger.SaveEdit(r.Context(), chi.URLParam(r, "id"), draft)
	if err != nil && !errors.Is(err, domain.ErrNotEditing) {
		h.fail(w, err)
		return
	}

	h.redirect(w, r)
}

// Delete removes an entry once the browser confirmed it.
func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	confirmed := isConfirmed(r)

	_, err := h.ledger.Delete(r.Context(), chi.URLParam(r, "id"), usecase.ConfirmFunc(func(string) bool {
		return confirmed
	}))
	if err != nil && !errors.Is(err, domain.ErrConfirmationRequired) {
		h.fail(w, err)
		return
	}

	h.redirect(w, r)
}

// SetFilter changes the active filter.
func (h *PageHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseFilter(r.FormValue("filter"))
	if err != nil {
		h.render(w, http.StatusBadRequest, err.Error())
		return
	}

	h.ledger.SetFilter(filter)
	h.redirect(w, r)
}

func (h *PageHandler) fail(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		h.render(w, http.StatusUnprocessableEntity, verr.UserMessage())
		return
	}

	h.logger.Error().Err(err).Msg("action failed")
	h.render(w, mapDomainError(err), "Could not save your changes. Please try again.")
}

func (h *PageHandler) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) render(w http.ResponseWriter, status int, message string) {
	data := pageData{
		View:           h.ledger.Render(),
		Message:        message,
		Filters:        []domain.Filter{domain.FilterAll, domain.FilterIncome, domain.FilterExpense},
		MaxDescription: domain.MaxDescriptionLength,
		DeletePrompt:   usecase.DeletePrompt,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, "widget_page", data); err != nil {
		h.logger.Error().Err(err).Msg("template execution failed")
	}
}
