package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/usecase"
)

type memoryStorage struct {
	entries []domain.Entry
	saveErr error
}

func (m *memoryStorage) Load(ctx context.Context) []domain.Entry {
	return domain.CloneEntries(m.entries)
}

func (m *memoryStorage) Save(ctx context.Context, entries []domain.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = domain.CloneEntries(entries)
	return nil
}

type seqIDs struct{ n int }

func (s *seqIDs) Generate() string {
	s.n++
	return fmt.Sprintf("e%d", s.n)
}

var errDiskFull = errors.New("disk full")

var rupees = domain.NewMoneyFormatter(domain.DefaultCurrencySymbol, domain.GroupingIndian)

func newTestLedger(t *testing.T, storage *memoryStorage) *usecase.LedgerUseCase {
	t.Helper()
	return usecase.NewLedgerUseCase(context.Background(), storage, &seqIDs{})
}

func seed(t *testing.T, ledger *usecase.LedgerUseCase, typ, description, amount string) domain.Entry {
	t.Helper()
	e, err := ledger.Add(context.Background(), domain.EntryInput{Type: typ, Description: description, Amount: amount})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return e
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}
