package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for registry lookups and the
// selector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	FetchesTotal   *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	CacheHitsTotal *prometheus.CounterVec
	StaleDiscarded *prometheus.CounterVec
	Submissions    prometheus.Counter
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carpick_registry_fetches_total",
				Help: "Registry lookups by endpoint and outcome (ok, empty, failed)",
			},
			[]string{"endpoint", "outcome"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carpick_registry_fetch_duration_seconds",
				Help:    "Registry lookup latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"endpoint"},
		),
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carpick_registry_cache_hits_total",
				Help: "Registry lookups answered from the in-session memo",
			},
			[]string{"endpoint"},
		),
		StaleDiscarded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carpick_selector_stale_responses_total",
				Help: "Lookup completions dropped because a newer request superseded them",
			},
			[]string{"field"},
		),
		Submissions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "carpick_selector_submissions_total",
				Help: "Accepted form submissions",
			},
		),
	}
}

func (m *Metrics) ObserveFetch(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(endpoint, outcome).Inc()
	m.FetchDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) CacheHit(endpoint string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) Stale(field string) {
	if m == nil {
		return
	}
	m.StaleDiscarded.WithLabelValues(field).Inc()
}

func (m *Metrics) Submitted() {
	if m == nil {
		return
	}
	m.Submissions.Inc()
}
