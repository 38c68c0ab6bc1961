package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

var (
	indexerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "indexer_api",
		Name:      "operations_total",
		Help:      "Count of indexer API operations.",
	}, []string{"operation", "network", "status"})
	indexerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "settlement",
		Subsystem: "indexer_api",
		Name:      "operation_duration_seconds",
		Help:      "Duration of indexer API operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// IndexerAPI tracks metrics for calls to the kasplex and explorer APIs.
type IndexerAPI struct {
	network model.Network
}

// NewIndexerAPI constructs a metrics collector for indexer API calls.
func NewIndexerAPI(network model.Network) *IndexerAPI {
	if network == "" {
		network = "unknown"
	}
	return &IndexerAPI{network: network}
}

// Observe records a single API call outcome and duration.
func (m IndexerAPI) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	indexerRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	indexerRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}
