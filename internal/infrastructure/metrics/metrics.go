package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/pocketledger/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	EntryMutations     *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	StorageWriteErrors prometheus.Counter
	Totals             *prometheus.GaugeVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EntryMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketledger_entry_mutations_total",
				Help: "Total entry mutations by operation",
			},
			[]string{"operation"},
		),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketledger_validation_failures_total",
				Help: "Total rejected inputs by reason",
			},
			[]string{"reason"},
		),
		StorageWriteErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocketledger_storage_write_errors_total",
			Help: "Total failed writes of the entry collection",
		}),
		Totals: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pocketledger_totals",
				Help: "Current income, expense and net totals",
			},
			[]string{"kind"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pocketledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// EntryMutated implements usecase.Observer.
func (m *Metrics) EntryMutated(op string) {
	m.EntryMutations.WithLabelValues(op).Inc()
}

// ValidationFailed implements usecase.Observer.
func (m *Metrics) ValidationFailed(reason string) {
	m.ValidationFailures.WithLabelValues(reason).Inc()
}

// StorageWriteFailed implements usecase.Observer.
func (m *Metrics) StorageWriteFailed() {
	m.StorageWriteErrors.Inc()
}

// TotalsChanged implements usecase.Observer.
func (m *Metrics) TotalsChanged(totals domain.Totals) {
	m.Totals.WithLabelValues("income").Set(totals.Income.InexactFloat64())
	m.Totals.WithLabelValues("expense").Set(totals.Expense.InexactFloat64())
	m.Totals.WithLabelValues("net").Set(totals.Net.InexactFloat64())
}
