package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	contractCalls        *prometheus.CounterVec
	contractCallDuration *prometheus.HistogramVec
	httpRequests         *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	activeSessions       prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		contractCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holovault_contract_calls_total",
			Help: "Contract reads and writes, labeled by method, kind and result.",
		}, []string{"method", "kind", "result"}),
		contractCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "holovault_contract_call_duration_seconds",
			Help:    "Latency of contract calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holovault_http_requests_total",
			Help: "HTTP requests, labeled by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "holovault_http_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holovault_sessions_active",
			Help: "Wallet sessions currently held in the session cache.",
		}),
	}
	reg.MustRegister(m.contractCalls, m.contractCallDuration, m.httpRequests, m.httpRequestDuration, m.activeSessions)
	return m
}

// ObserveContractCall records one contract call. kind is "read" or "write".
func (m *Metrics) ObserveContractCall(method, kind string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.contractCalls.WithLabelValues(method, kind, result).Inc()
	m.contractCallDuration.WithLabelValues(method, kind).Observe(d.Seconds())
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SetActiveSessions publishes the session count.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
