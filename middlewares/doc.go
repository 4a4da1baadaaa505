// Package middlewares provides the request middleware an ssrkit server runs
// with.
//
//	app := ssrkit.New(
//	    ssrkit.WithLogger("ssr", middlewares.RequestIDExtractor()),
//	    ssrkit.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Tracing(),
//	        middlewares.Metrics(),
//	        middlewares.RequestLogger("/health/live", "/health/ready"),
//	        middlewares.Recover(),
//	        middlewares.Timeout(10*time.Second),
//	    ),
//	)
//
// # Request ID
//
// RequestID reuses an upstream X-Request-ID or X-Correlation-ID header, or
// generates a UUID. RequestIDExtractor adds it to every log record.
//
// # Observability
//
// RequestLogger writes one slog record per request. Metrics exposes request
// counters and durations to Prometheus; Tracing opens an OpenTelemetry server
// span that the render span nests under. All three label requests by chi
// route pattern.
//
// # Failures
//
// Recover converts panics into *PanicError and Timeout puts a deadline on the
// request context, reporting *TimeoutError when a handler fails because of
// it. Both errors carry a status code that the error handler picks up
// through ssrkit.StatusCode: 500 and 503.
package middlewares
