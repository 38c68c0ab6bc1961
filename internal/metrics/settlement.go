package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

var (
	settlementCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "engine",
		Name:      "cycles_total",
		Help:      "Count of settlement cycles.",
	}, []string{"network", "status"})
	settlementCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "settlement",
		Subsystem: "engine",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of settlement cycles.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12), // 0.5s..~17m
	}, []string{"network", "status"})
	settlementPaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "engine",
		Name:      "payments_total",
		Help:      "Count of submitted miner payments.",
	}, []string{"network", "kind"})
	settlementPaidSompi = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "engine",
		Name:      "paid_sompi_total",
		Help:      "Total sompi paid out to miners.",
	}, []string{"network", "kind"})
	krc20TransfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "engine",
		Name:      "krc20_transfers_total",
		Help:      "Count of krc-20 transfer attempts by outcome.",
	}, []string{"network", "outcome"})
)

// Settlement tracks metrics for the settlement engine.
type Settlement struct {
	network model.Network
}

// NewSettlement constructs a metrics collector for settlement cycles.
func NewSettlement(network model.Network) *Settlement {
	if network == "" {
		network = "unknown"
	}
	return &Settlement{network: network}
}

// ObserveCycle records one settlement cycle outcome and duration.
func (m Settlement) ObserveCycle(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	settlementCyclesTotal.WithLabelValues(string(m.network), status).Inc()
	settlementCycleDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObservePayment records a submitted payment. Kind distinguishes kas payouts
// from nacho rebates and custodial transfers.
func (m Settlement) ObservePayment(kind string, amount uint64) {
	settlementPaymentsTotal.WithLabelValues(string(m.network), kind).Inc()
	settlementPaidSompi.WithLabelValues(string(m.network), kind).Add(float64(amount))
}

// ObserveKRC20Transfer records a commit/reveal attempt outcome.
func (m Settlement) ObserveKRC20Transfer(outcome string) {
	krc20TransfersTotal.WithLabelValues(string(m.network), outcome).Inc()
}
