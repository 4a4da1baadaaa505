package middlewares

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/ssrkit/internal"
)

// MetricsConfig configures the Prometheus middleware.
type MetricsConfig struct {
	Registry  prometheus.Registerer
	Namespace string
	Buckets   []float64
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithMetricsRegistry registers the collectors on reg instead of the default registerer.
func WithMetricsRegistry(reg prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		if reg != nil {
			c.Registry = reg
		}
	}
}

// WithMetricsNamespace sets the metric namespace. Defaults to "ssrkit".
func WithMetricsNamespace(ns string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = ns
	}
}

// WithMetricsBuckets sets the duration histogram buckets.
func WithMetricsBuckets(b []float64) MetricsOption {
	return func(c *MetricsConfig) {
		if len(b) > 0 {
			c.Buckets = b
		}
	}
}

// Metrics counts requests and observes their duration, labelled by method,
// chi route pattern and status. Route patterns keep label cardinality bounded
// even behind a catch-all route.
//
// Collectors are registered when Metrics is called; call it once per registry.
func Metrics(opts ...MetricsOption) internal.Middleware {
	cfg := MetricsConfig{
		Registry:  prometheus.DefaultRegisterer,
		Namespace: "ssrkit",
		Buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   cfg.Buckets,
	}, []string{"method", "route"})

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := c.ResponseWriter().Status()
			if err != nil && !c.Written() {
				status = internal.StatusCode(err)
			}

			method := c.Request().Method
			route := routePattern(c)
			requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
