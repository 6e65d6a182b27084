package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/usecase"
)

// APIHandler serves the JSON API.
type APIHandler struct {
	ledger    LedgerService
	formatter domain.MoneyFormatter
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(ledger LedgerService, formatter domain.MoneyFormatter) *APIHandler {
	return &APIHandler{ledger: ledger, formatter: formatter}
}

// Widget returns the full rendered view.
func (h *APIHandler) Widget(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.WidgetFromView(h.ledger.Render(), h.formatter))
}

// List returns the visible entries. A filter query overrides the active filter
// for this request only.
func (h *APIHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.ledger.Visible()

	if raw := r.URL.Query().Get("filter"); raw != "" {
		filter, err := domain.ParseFilter(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
			return
		}
		entries = domain.Visible(h.ledger.All(), filter)
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries, h.formatter))
}

// Create adds a new entry.
func (h *APIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledger.Add(r.Context(), req.ToInput())
	if err != nil {
		writeDomainError(w, "failed to create entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry, h.formatter))
}

// Update replaces the mutable fields of an entry.
func (h *APIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	updated, err := h.ledger.Update(r.Context(), id, req.ToInput())
	if err != nil {
		writeDomainError(w, "failed to update entry", err)
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "entry not found", id)
		return
	}

	h.writeEntry(w, id)
}

// Delete removes an entry. The caller must pass confirm=true.
func (h *APIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirmed := isConfirmed(r)

	removed, err := h.ledger.Delete(r.Context(), id, usecase.ConfirmFunc(func(string) bool {
		return confirmed
	}))
	if err != nil {
		writeDomainError(w, "failed to delete entry", err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "entry not found", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Totals returns income, expense and net over every entry.
func (h *APIHandler) Totals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.TotalsFromDomain(h.ledger.Totals(), h.formatter))
}

// SetFilter changes the active filter and returns the re-rendered view.
func (h *APIHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req dto.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	filter, err := domain.ParseFilter(req.Filter)
	if err != nil {
		writeDomainError(w, "invalid filter", err)
		return
	}
	h.ledger.SetFilter(filter)

	h.Widget(w, r)
}

// BeginEdit switches a row into Editing and returns its draft.
func (h *APIHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	draft, ok := h.ledger.BeginEdit(id)
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.DraftFromDomain(draft))
}

// CancelEdit discards a row's draft.
func (h *APIHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	h.ledger.CancelEdit(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// SaveEdit validates the submitted draft and commits it.
func (h *APIHandler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	saved, err := h.ledger.SaveEdit(r.Context(), id, req.ToDraft())
	if err != nil {
		writeDomainError(w, "failed to save entry", err)
		return
	}
	if !saved {
		writeError(w, http.StatusNotFound, "entry not found", id)
		return
	}

	h.writeEntry(w, id)
}

func (h *APIHandler) writeEntry(w http.ResponseWriter, id string) {
	entry, ok := h.ledger.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found", id)
		return
	}
	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry, h.formatter))
}
