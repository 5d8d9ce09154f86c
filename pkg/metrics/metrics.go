package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the walkcore client
type Metrics struct {
	// Backend call metrics, recorded by the transport client
	BackendRequestsTotal    *prometheus.CounterVec
	BackendRequestDuration  *prometheus.HistogramVec
	BackendRequestsInFlight prometheus.Gauge

	// Controller metrics
	ControllerActionsTotal *prometheus.CounterVec

	// HTTP server metrics, recorded by the stub server middleware
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates a new Metrics instance registered on reg. A nil reg falls back
// to the default registerer; tests pass a fresh registry so repeated setup
// does not panic on duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		BackendRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wkc_backend_requests_total",
				Help: "Total number of requests to the walkcore backend",
			},
			[]string{"endpoint", "status"},
		),
		BackendRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wkc_backend_request_duration_seconds",
				Help:    "Duration of walkcore backend requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		BackendRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "wkc_backend_requests_in_flight",
				Help: "Current number of in-flight walkcore backend requests",
			},
		),
		ControllerActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wkc_controller_actions_total",
				Help: "Total number of controller actions by outcome",
			},
			[]string{"controller", "outcome"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wkc_http_requests_total",
				Help: "Total number of HTTP requests handled by the stub server",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wkc_http_request_duration_seconds",
				Help:    "Duration of stub server HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
	}
}

// RecordBackendRequest records one completed backend call
func (m *Metrics) RecordBackendRequest(endpoint, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.BackendRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordControllerAction records the outcome of one controller action
func (m *Metrics) RecordControllerAction(controller, outcome string) {
	if m == nil {
		return
	}
	m.ControllerActionsTotal.WithLabelValues(controller, outcome).Inc()
}

// BackendInFlight adjusts the in-flight gauge around a backend call
func (m *Metrics) BackendInFlight(delta float64) {
	if m == nil {
		return
	}
	m.BackendRequestsInFlight.Add(delta)
}
