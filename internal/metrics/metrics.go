package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "velog"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

type Metrics struct {
	Registry *prometheus.Registry

	GraphQLRequests    *prometheus.CounterVec
	SeriesAppends      *prometheus.CounterVec
	SeriesAppendRetry  prometheus.Counter
	OrderingIssues     prometheus.Gauge
	HTTPRequestLatency *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		GraphQLRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "requests_total",
			Help:      "GraphQL requests by operation name and outcome.",
		}, []string{"operation", "outcome"}),
		SeriesAppends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "series",
			Name:      "appends_total",
			Help:      "Append-to-series attempts by outcome.",
		}, []string{"outcome"}),
		SeriesAppendRetry: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "series",
			Name:      "append_retries_total",
			Help:      "Appends retried after a unique index violation.",
		}),
		OrderingIssues: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "series",
			Name:      "ordering_issues",
			Help:      "Series whose indexes were not contiguous at the last audit.",
		}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.Registry.MustRegister(
		m.GraphQLRequests,
		m.SeriesAppends,
		m.SeriesAppendRetry,
		m.OrderingIssues,
		m.HTTPRequestLatency,
	)
	return m
}

// Outcome maps an error to an outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
