// Package metrics holds the Prometheus collectors exported by the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "posts_api"

// DefaultBuckets are the request duration histogram buckets, in seconds.
func DefaultBuckets() []float64 {
	return []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
}

// Collector owns the registry and the HTTP and validation metrics.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	validationFailures *prometheus.CounterVec
	postEvents         *prometheus.CounterVec
}

// NewCollector creates a Collector on its own registry, including the Go
// runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewCollectorWithRegistry(reg)
}

// NewCollectorWithRegistry registers the service metrics on reg.
func NewCollectorWithRegistry(reg *prometheus.Registry) *Collector {
	c := &Collector{registry: reg}

	c.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "code"},
	)

	c.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   DefaultBuckets(),
		},
		[]string{"route", "method"},
	)

	c.validationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "validation_failures_total",
			Help:      "Total number of request bodies rejected by a schema",
		},
		[]string{"schema"},
	)

	c.postEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "post_events_total",
			Help:      "Total number of post lifecycle events by type",
		},
		[]string{"type"},
	)

	reg.MustRegister(c.requestsTotal, c.requestDuration, c.validationFailures, c.postEvents)
	return c
}

// ObserveRequest records one completed HTTP request.
func (c *Collector) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ValidationFailed records a request body rejected by the named schema.
func (c *Collector) ValidationFailed(schemaName string) {
	if c == nil {
		return
	}
	c.validationFailures.WithLabelValues(schemaName).Inc()
}

// PostEvent records one post lifecycle event.
func (c *Collector) PostEvent(eventType string) {
	if c == nil {
		return
	}
	c.postEvents.WithLabelValues(eventType).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		Registry: c.registry,
	})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
