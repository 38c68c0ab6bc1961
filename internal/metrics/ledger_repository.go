package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

var (
	ledgerRepoRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "ledger_repository",
		Name:      "operations_total",
		Help:      "Count of ledger repository operations.",
	}, []string{"operation", "network", "status"})
	ledgerRepoRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "settlement",
		Subsystem: "ledger_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger repository operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// LedgerRepository tracks metrics for ledger database operations.
type LedgerRepository struct {
	network model.Network
}

// NewLedgerRepository constructs a metrics collector for ledger operations.
func NewLedgerRepository(network model.Network) *LedgerRepository {
	if network == "" {
		network = "unknown"
	}
	return &LedgerRepository{network: network}
}

// Observe records a single ledger operation outcome and duration.
func (m LedgerRepository) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ledgerRepoRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	ledgerRepoRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}
