package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

var (
	auditSinkRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "audit_sink",
		Name:      "operations_total",
		Help:      "Count of audit sink operations.",
	}, []string{"operation", "network", "status"})
	auditSinkRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "settlement",
		Subsystem: "audit_sink",
		Name:      "operation_duration_seconds",
		Help:      "Duration of audit sink operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// AuditSink tracks metrics for audit event flushes.
type AuditSink struct {
	network model.Network
}

// NewAuditSink constructs a metrics collector for audit sink operations.
func NewAuditSink(network model.Network) *AuditSink {
	if network == "" {
		network = "unknown"
	}
	return &AuditSink{network: network}
}

// Observe records a single audit sink operation outcome and duration.
func (m AuditSink) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	auditSinkRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	auditSinkRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}
