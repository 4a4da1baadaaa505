package middlewares

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ssrkit/internal"
)

// RequestLogger logs one record per request after the handler returns.
// Responses with status 500 and above are logged at error level, 400 and
// above at warn, everything else at info. Paths in skip are not logged.
func RequestLogger(skip ...string) internal.Middleware {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if _, ok := skipped[r.URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				status = internal.StatusCode(err)
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routePattern(c)),
				slog.Int("status", status),
				slog.Int64("bytes", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}

			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}

// routePattern returns the matched chi route, or "unmatched" for requests no
// route handled. Known only after the router has run.
func routePattern(c internal.Context) string {
	if rctx := chi.RouteContext(c.Request().Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
