package render

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrymomot/ssrkit/pkg/render"

// config holds stream render configuration.
type config struct {
	tracer  trace.Tracer
	onError func(error)
	metrics *Metrics
	timeout time.Duration
}

// Option configures a render.
type Option func(*config)

// WithOnError registers a callback invoked once with the render error, if any.
// It runs on the render goroutine before AllReady is closed.
func WithOnError(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// WithTimeout bounds the render. Zero (the default) means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTracer sets the tracer used for the render span.
// Defaults to the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithMetrics records render duration, size and failures into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
