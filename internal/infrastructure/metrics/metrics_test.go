package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.EntryMutations == nil || m.HTTPRequests == nil || m.Totals == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.EntryMutated("add")
	m.StorageWriteFailed()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestObserverUpdatesMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.EntryMutated("add")
	m.EntryMutated("add")
	m.EntryMutated("remove")
	m.ValidationFailed("invalid_amount")
	m.StorageWriteFailed()
	m.TotalsChanged(domain.Totals{
		Income:  decimal.NewFromInt(50000),
		Expense: decimal.NewFromInt(85000),
		Net:     decimal.NewFromInt(-35000),
	})

	if got := testutil.ToFloat64(m.EntryMutations.WithLabelValues("add")); got != 2 {
		t.Fatalf("expected 2 add mutations, got %v", got)
	}
	if got := testutil.ToFloat64(m.EntryMutations.WithLabelValues("remove")); got != 1 {
		t.Fatalf("expected 1 remove mutation, got %v", got)
	}
	if got := testutil.ToFloat64(m.ValidationFailures.WithLabelValues("invalid_amount")); got != 1 {
		t.Fatalf("expected 1 validation failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.StorageWriteErrors); got != 1 {
		t.Fatalf("expected 1 storage error, got %v", got)
	}
	if got := testutil.ToFloat64(m.Totals.WithLabelValues("net")); got != -35000 {
		t.Fatalf("expected net gauge -35000, got %v", got)
	}
}
