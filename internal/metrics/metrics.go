// Package metrics defines the Prometheus instrumentation for the gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all gateway metrics. One instance is created at startup
// and shared by the handler chain.
type Metrics struct {
	// RequestsTotal counts handled file requests by method and status.
	RequestsTotal *prometheus.CounterVec

	// DenialsTotal counts authorization and path failures by error code.
	DenialsTotal *prometheus.CounterVec

	// FetchDuration observes the latency of backend fetches by method.
	FetchDuration *prometheus.HistogramVec
}

// New creates and registers all metrics with reg. Pass a fresh registry in
// tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doorman_requests_total",
				Help: "Total number of file requests handled",
			},
			[]string{"method", "status"},
		),
		DenialsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doorman_denials_total",
				Help: "Total number of denied file requests by error code",
			},
			[]string{"code"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "doorman_backend_fetch_duration_seconds",
				Help:    "Latency of storage backend fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}
