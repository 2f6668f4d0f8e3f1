package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
)

// CartSyncMetrics records gateway round-trips and local fallback activations
// for the reconciliation engine.
type CartSyncMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	replica  *prometheus.CounterVec
}

// NewCartSyncMetrics registers the cart sync metrics on the provided registerer.
func NewCartSyncMetrics(reg prometheus.Registerer) *CartSyncMetrics {
	if reg == nil {
		return &CartSyncMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_gateway_duration_seconds",
		Help:    "Duration of cart gateway round-trips in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart operations by outcome (success or fallback).",
	}, []string{"operation", "outcome"})
	replica := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_replica_errors_total",
		Help: "Errors reading or writing the local cart replica.",
	}, []string{"action"})
	reg.MustRegister(duration, outcomes, replica)
	return &CartSyncMetrics{
		duration: duration,
		outcomes: outcomes,
		replica:  replica,
	}
}

// ObserveGateway records the duration for a gateway round-trip.
func (c *CartSyncMetrics) ObserveGateway(operation string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncOutcome counts an operation that resolved with the given outcome.
func (c *CartSyncMetrics) IncOutcome(operation, outcome string) {
	if c == nil || c.outcomes == nil {
		return
	}
	c.outcomes.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// IncReplicaError counts a failed replica read, write or erase.
func (c *CartSyncMetrics) IncReplicaError(action string) {
	if c == nil || c.replica == nil {
		return
	}
	c.replica.WithLabelValues(normalizeLabel(action)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
