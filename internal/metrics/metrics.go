package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CheckoutMetrics struct {
	Attempts      *prometheus.CounterVec
	Verifications *prometheus.CounterVec
	registry      *prometheus.Registry
}

func NewCheckoutMetrics() *CheckoutMetrics {
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "attempts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "payment_verifications_total",
		Help:      "Payment signature verifications by result.",
	}, []string{"result"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(attempts, verifications)

	return &CheckoutMetrics{
		Attempts:      attempts,
		Verifications: verifications,
		registry:      registry,
	}
}

func (m *CheckoutMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Outcome labels for the attempts counter.
const (
	OutcomeStarted         = "started"
	OutcomeAlreadyEntitled = "already_entitled"
	OutcomeRejected        = "rejected_in_flight"
	OutcomeOrderError      = "order_error"
	OutcomeCancelled       = "cancelled"
	OutcomeVerifyFailed    = "verify_failed"
	OutcomeWriteFailed     = "write_failed"
	OutcomeSucceeded       = "succeeded"
)
