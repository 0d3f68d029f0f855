package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups Prometheus collectors of the panel service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestAttempts      *prometheus.CounterVec
	RequestRetries       prometheus.Counter
	ClassifiedErrors     *prometheus.CounterVec
	SessionInvalidations prometheus.Counter
	HistoryViolations    prometheus.Counter
	AuditRuns            prometheus.Counter
}

// New creates collectors registered on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpanel_api_request_attempts_total",
				Help: "Attempts made against the marketplace API",
			},
			[]string{"method", "status"},
		),
		RequestRetries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "marketpanel_api_request_retries_total",
				Help: "Retries scheduled by the request pipeline",
			},
		),
		ClassifiedErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpanel_api_errors_total",
				Help: "Terminal request failures by normalized kind",
			},
			[]string{"kind"},
		),
		SessionInvalidations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "marketpanel_session_invalidations_total",
				Help: "Sessions cleared after an authorization lapse",
			},
		),
		HistoryViolations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "marketpanel_delivery_history_violations_total",
				Help: "Delivery status histories that were rewritten, truncated or out of order",
			},
		),
		AuditRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "marketpanel_delivery_audit_runs_total",
				Help: "Completed delivery history audit runs",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestAttempts,
		m.RequestRetries,
		m.ClassifiedErrors,
		m.SessionInvalidations,
		m.HistoryViolations,
		m.AuditRuns,
	)
	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAttempt records a single request attempt. Status 0 means no response.
func (m *Metrics) ObserveAttempt(method string, status int) {
	if m == nil {
		return
	}
	label := "none"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.RequestAttempts.WithLabelValues(method, label).Inc()
}

func (m *Metrics) ObserveRetry() {
	if m == nil {
		return
	}
	m.RequestRetries.Inc()
}

func (m *Metrics) ObserveError(kind string) {
	if m == nil {
		return
	}
	m.ClassifiedErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveSessionInvalidated() {
	if m == nil {
		return
	}
	m.SessionInvalidations.Inc()
}

func (m *Metrics) ObserveHistoryViolation() {
	if m == nil {
		return
	}
	m.HistoryViolations.Inc()
}

func (m *Metrics) ObserveAuditRun() {
	if m == nil {
		return
	}
	m.AuditRuns.Inc()
}
