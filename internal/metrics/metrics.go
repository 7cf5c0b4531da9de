package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for SearchesTotal.
const (
	OutcomeFound    = "found"
	OutcomeNoPath   = "no_path"
	OutcomeInvalid  = "invalid"
	OutcomeLimit    = "limit"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// Metrics are the service's search collectors, bound to one registry.
type Metrics struct {
	SearchesTotal  *prometheus.CounterVec
	ExpandedNodes  prometheus.Histogram
	SearchDuration prometheus.Histogram

	registry *prometheus.Registry
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridpath_searches_total",
			Help: "Searches by outcome",
		}, []string{"outcome"}),
		ExpandedNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_expanded_nodes",
			Help:    "Frontier extractions per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_search_duration_seconds",
			Help:    "Wall time per search",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.SearchesTotal, m.ExpandedNodes, m.SearchDuration,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records one finished search.
func (m *Metrics) Observe(outcome string, expanded int, elapsed time.Duration) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeInvalid {
		return
	}
	m.ExpandedNodes.Observe(float64(expanded))
	m.SearchDuration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
