package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for generation metrics.
const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid"
	outcomeUnavailable = "unavailable"
	outcomeFailed      = "failed"
)

// Metrics holds the Prometheus collectors for the server.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logoflow_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logoflow_generations_total",
				Help: "Generation requests by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logoflow_generation_duration_seconds",
				Help:    "Time spent waiting on the model provider",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(
		m.requests,
		m.generations,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) observe(kind, outcome string, start time.Time) {
	m.generations.WithLabelValues(kind, outcome).Inc()
	if !start.IsZero() {
		m.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
