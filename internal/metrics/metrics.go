// Package metrics holds the Prometheus collectors of the lvpart service.
//
// Every Collector owns its registry, so tests and embedded servers can create
// as many as they like without duplicate-registration panics.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/lvpart/partition"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeOK       = "ok"
	OutcomeInput    = "input_error"
	OutcomeInternal = "internal_error"
	OutcomeCanceled = "canceled"
	OutcomeOther    = "error"
)

// Collector holds all Prometheus metrics for the service.
type Collector struct {
	registry *prometheus.Registry

	// Search metrics
	Searches             *prometheus.CounterVec
	CombinationsSearched prometheus.Counter
	SearchDuration       prometheus.Histogram

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Job metrics
	JobsInflight prometheus.Gauge
}

// NewCollector creates a collector with the given namespace and registers
// all metrics plus the Go runtime collector on a fresh registry.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of partition searches by outcome",
			},
			[]string{"outcome"},
		),
		CombinationsSearched: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "combinations_searched_total",
				Help:      "Total number of cut tuples scored by successful searches",
			},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Partition search duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		JobsInflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "jobs_inflight",
				Help:      "Number of asynchronous searches currently running",
			},
		),
	}

	c.registry.MustRegister(
		c.Searches,
		c.CombinationsSearched,
		c.SearchDuration,
		c.HTTPRequests,
		c.HTTPDuration,
		c.JobsInflight,
		collectors.NewGoCollector(),
	)

	return c
}

// Registry exposes the underlying registry (used by tests and custom exporters).
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveSearch records one finished search. combinations is only added on success.
func (c *Collector) ObserveSearch(err error, combinations uint64, elapsed time.Duration) {
	outcome := Outcome(err)
	c.Searches.WithLabelValues(outcome).Inc()
	c.SearchDuration.Observe(elapsed.Seconds())
	if outcome == OutcomeOK {
		c.CombinationsSearched.Add(float64(combinations))
	}
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Outcome classifies a search error into an outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case partition.IsInputError(err):
		return OutcomeInput
	case partition.IsInternalError(err):
		return OutcomeInternal
	case errors.Is(err, partition.ErrCanceled):
		return OutcomeCanceled
	default:
		return OutcomeOther
	}
}
