package middlewares

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/ssrkit/internal"
)

const defaultTracerName = "github.com/dmitrymomot/ssrkit"

// TracingOption configures the tracing middleware.
type TracingOption func(*tracingConfig)

type tracingConfig struct {
	tracer trace.Tracer
}

// WithTracerProvider takes the tracer from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *tracingConfig) {
		if tp != nil {
			c.tracer = tp.Tracer(defaultTracerName)
		}
	}
}

// Tracing starts a server span per request and installs it in the request
// context, so the render span started by Context.Stream becomes its child.
func Tracing(opts ...TracingOption) internal.Middleware {
	cfg := &tracingConfig{tracer: otel.Tracer(defaultTracerName)}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			ctx, span := cfg.tracer.Start(c.Context(), fmt.Sprintf("HTTP %s", r.Method),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()
			c.SetContext(ctx)

			err := next(c)

			status := c.ResponseWriter().Status()
			if err != nil && !c.Written() {
				status = internal.StatusCode(err)
			}
			span.SetAttributes(
				attribute.String("http.route", routePattern(c)),
				attribute.Int("http.response.status_code", status),
			)
			if err != nil {
				span.RecordError(err)
			}
			if status >= 500 {
				span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
			}
			return err
		}
	}
}
