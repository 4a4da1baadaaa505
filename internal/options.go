package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrymomot/ssrkit/pkg/logger"
	"github.com/dmitrymomot/ssrkit/pkg/render"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles serves subDir of fsys under pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed static
//	var assets embed.FS
//
//	ssrkit.New(
//	    ssrkit.WithStaticFiles("/static/", assets, "static"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		a.mounts = append(a.mounts, mount{handler: staticHandler(pattern, subFS, "public, max-age=3600"), pattern: pattern})
	}
}

// WithDevFiles serves dir from disk under pattern without caching. It backs
// the unbuilt client sources in development.
func WithDevFiles(pattern, dir string) Option {
	return WithMount(pattern, staticHandler(pattern, os.DirFS(dir), "no-store"))
}

func staticHandler(pattern string, fsys fs.FS, cacheControl string) http.Handler {
	fileServer := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cacheControl)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fileServer.ServeHTTP(w, r)
	})
}

// WithMount attaches a plain http.Handler at pattern.
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		if pattern != "" && h != nil {
			a.mounts = append(a.mounts, mount{handler: h, pattern: pattern})
		}
	}
}

// WithMetricsHandler exposes h, usually promhttp.Handler(), at path.
func WithMetricsHandler(path string, h http.Handler) Option {
	return WithMount(path, h)
}

// WithRenderOptions sets the options used by Context.Stream.
func WithRenderOptions(opts ...render.Option) Option {
	return func(a *App) {
		a.renderOptions = append(a.renderOptions, opts...)
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error and nothing was written yet.
//
// Example:
//
//	ssrkit.WithErrorHandler(func(c ssrkit.Context, err error) error {
//	    return c.String(ssrkit.StatusCode(err), "Something went wrong")
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a JSON logger with a component name and optional extractors.
//
// Example:
//
//	ssrkit.New(
//	    ssrkit.WithLogger("ssr", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
