package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/pocketledger/internal/usecase"
)

func newTestPage(t *testing.T, ledger *usecase.LedgerUseCase) *PageHandler {
	t.Helper()
	h, err := NewPageHandler(ledger, rupees, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create page handler: %v", err)
	}
	return h
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPageHandler_ShowEmpty(t *testing.T) {
	h := newTestPage(t, newTestLedger(t, &memoryStorage{}))

	rec := serve(h.Show, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"No entries to show.", `maxlength="60"`, "₹0.00", "net-positive"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestPageHandler_CreateRedirectsAndKeepsType(t *testing.T) {
	ledger := newTestLedger(t, &memoryStorage{})
	h := newTestPage(t, ledger)

	rec := serve(h.Create, postForm("/entries", url.Values{
		"type": {"expense"}, "description": {"Rent"}, "amount": {"15000"},
	}))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	form := ledger.Form()
	if form.Type != "expense" || form.Description != "" || form.Amount != "" {
		t.Fatalf("expected cleared form keeping type, got %+v", form)
	}

	body := serve(h.Show, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	if !strings.Contains(body, "Rent") || !strings.Contains(body, "₹15,000.00") || !strings.Contains(body, "net-negative") {
		t.Fatalf("expected rendered entry and negative net, got %s", body)
	}
}

func TestPageHandler_CreateValidationKeepsValues(t *testing.T) {
	ledger := newTestLedger(t, &memoryStorage{})
	h := newTestPage(t, ledger)

	rec := serve(h.Create, postForm("/entries", url.Values{
		"type": {"income"}, "description": {"Gift"}, "amount": {"abc"},
	}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please enter a valid positive amount.") {
		t.Fatalf("expected validation message in page")
	}
	if !strings.Contains(rec.Body.String(), `value="Gift"`) {
		t.Fatalf("expected submitted description to be kept")
	}
	if len(ledger.All()) != 0 {
		t.Fatalf("expected no entry to be added")
	}
}

func TestPageHandler_CreateClampsDescription(t *testing.T) {
	ledger := newTestLedger(t, &memoryStorage{})
	h := newTestPage(t, ledger)

	serve(h.Create, postForm("/entries", url.Values{
		"type": {"income"}, "description": {strings.Repeat("a", 75)}, "amount": {"1"},
	}))

	entries := ledger.All()
	if len(entries) != 1 || len(entries[0].Description) != 60 {
		t.Fatalf("expected one entry with a 60 character description, got %+v", entries)
	}
}

func TestPageHandler_StorageFailure(t *testing.T) {
	h := newTestPage(t, newTestLedger(t, &memoryStorage{saveErr: errDiskFull}))

	rec := serve(h.Create, postForm("/entries", url.Values{
		"type": {"income"}, "description": {"Salary"}, "amount": {"1"},
	}))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestPageHandler_EditFlow(t *testing.T) {
	ledger := newTestLedger(t, &memoryStorage{})
	e := seed(t, ledger, "income", "Salary", "100")
	h := newTestPage(t, ledger)

	serve(h.BeginEdit, withURLParam(httptest.NewRequest(http.MethodPost, "/", nil), "id", e.ID))
	body := serve(h.Show, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	if !strings.Contains(body, "/entries/"+e.ID+"/save") || !strings.Contains(body, `value="100.00"`) {
		t.Fatalf("expected inline edit form with current values")
	}

	rec := serve(h.SaveEdit, withURLParam(postForm("/", url.Values{
		"type": {"income"}, "description": {"Salary April"}, "amount": {"110"},
	}), "id", e.ID))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	got, _ := ledger.Get(e.ID)
	if got.Description != "Salary April" || ledger.IsEditing(e.ID) {
		t.Fatalf("expected saved entry and cleared draft, got %+v", got)
	}

	serve(h.BeginEdit, withURLParam(httptest.NewRequest(http.MethodPost, "/", nil), "id", e.ID))
	serve(h.CancelEdit, withURLParam(httptest.NewRequest(http.MethodPost, "/", nil), "id", e.ID))
	if ledger.IsEditing(e.ID) {
		t.Fatalf("expected cancel to leave editing")
	}
}

func TestPageHandler_DeleteNeedsConfirm(t *testing.T) {
	ledger := newTestLedger(t, &memoryStorage{})
	e := seed(t, ledger, "income", "Salary", "100")
	h := newTestPage(t, ledger)

	serve(h.Delete, withURLParam(postForm("/", url.Values{}), "id", e.ID))
	if len(ledger.All()) != 1 {
		t.Fatalf("expected unconfirmed delete to keep the entry")
	}

	rec := serve(h.Delete, withURLParam(postForm("/", url.Values{"confirm": {"true"}}), "id", e.ID))
	if rec.Code != http.StatusSeeOther || len(ledger.All()) != 0 {
		t.Fatalf("expected confirmed delete to remove the entry, got %d", rec.Code)
	}
}

func TestPageHandler_Filter(t *testing.T) {
	ledger := newTestLedger(t, &memoryStorage{})
	seed(t, ledger, "income", "Salary", "100")
	h := newTestPage(t, ledger)

	serve(h.SetFilter, postForm("/filter", url.Values{"filter": {"expense"}}))
	body := serve(h.Show, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	if !strings.Contains(body, "No entries to show.") || !strings.Contains(body, "₹100.00") {
		t.Fatalf("expected empty list with totals still counting the income")
	}

	rec := serve(h.Show, httptest.NewRequest(http.MethodGet, "/?filter=income", nil))
	if strings.Contains(rec.Body.String(), "No entries to show.") {
		t.Fatalf("expected filter query to switch back to income")
	}

	if rec := serve(h.SetFilter, postForm("/filter", url.Values{"filter": {"yearly"}})); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPageHandler_Reset(t *testing.T) {
	ledger := newTestLedger(t, &memoryStorage{})
	h := newTestPage(t, ledger)

	serve(h.Create, postForm("/entries", url.Values{"type": {"expense"}, "description": {""}, "amount": {"1"}}))
	serve(h.Reset, postForm("/entries/reset", url.Values{}))

	if form := ledger.Form(); form.Type != "income" || form.Amount != "" {
		t.Fatalf("expected default form, got %+v", form)
	}
}

func TestPageHandler_EscapesDescriptions(t *testing.T) {
	ledger := newTestLedger(t, &memoryStorage{})
	seed(t, ledger, "income", "<script>x</script>", "1")
	h := newTestPage(t, ledger)

	body := serve(h.Show, httptest.NewRequest(http.MethodGet, "/", nil)).Body.Bytes()
	if bytes.Contains(body, []byte("<script>x</script>")) {
		t.Fatalf("expected description to be escaped")
	}
}
