// Package metrics holds the prometheus collectors of the service.
//
// Collectors are created against an explicit registerer so tests can use a
// private prometheus.Registry instead of the global one.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dispatch"

// Dispatch counts assignment attempts by outcome and the conflicts absorbed on the way.
type Dispatch struct {
	outcomes  *prometheus.CounterVec
	conflicts *prometheus.CounterVec
	duration  prometheus.Histogram
}

func NewDispatch(reg prometheus.Registerer) *Dispatch {
	factory := promauto.With(reg)

	return &Dispatch{
		outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assignments_total",
				Help:      "Assign-nearest calls by outcome.",
			},
			[]string{"outcome"},
		),
		conflicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assignment_conflicts_total",
				Help:      "Conditional writes lost to a concurrent dispatch, by contended entity.",
			},
			[]string{"entity"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "assignment_duration_seconds",
				Help:      "Time spent in one assign-nearest call.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

func (m *Dispatch) Outcome(outcome string, elapsed time.Duration) {
	m.outcomes.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Dispatch) Conflict(entity string) {
	m.conflicts.WithLabelValues(entity).Inc()
}

// HTTP counts served requests by route template, method and status code.
type HTTP struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	factory := promauto.With(reg)

	return &HTTP{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of http requests handled by the service.",
			},
			[]string{"path", "method", "code"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
	}
}

func (m *HTTP) Observe(path, method, code string, elapsed time.Duration) {
	m.requests.WithLabelValues(path, method, code).Inc()
	m.latency.WithLabelValues(path, method).Observe(elapsed.Seconds())
}

// Jobs counts background job runs by job name and status.
type Jobs struct {
	runs *prometheus.CounterVec
}

func NewJobs(reg prometheus.Registerer) *Jobs {
	return &Jobs{
		runs: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "job_executions_total",
				Help:      "Total number of cron job executions.",
			},
			[]string{"job_name", "status"},
		),
	}
}

func (m *Jobs) Run(job, status string) {
	m.runs.WithLabelValues(job, status).Inc()
}
