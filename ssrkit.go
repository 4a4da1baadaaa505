package ssrkit

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dmitrymomot/ssrkit/internal"
	"github.com/dmitrymomot/ssrkit/pkg/health"
	"github.com/dmitrymomot/ssrkit/pkg/logger"
	"github.com/dmitrymomot/ssrkit/pkg/render"
)

type (
	// App orchestrates routing, middleware and the server lifecycle.
	App = internal.App
	// Router is the interface handlers use to declare routes.
	Router = internal.Router
	// Context provides request/response access and helper methods.
	Context = internal.Context
	// Handler declares routes on a router.
	Handler = internal.Handler
	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc
	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware
	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler
	// Option configures the application.
	Option = internal.Option
	// RunOption configures the server runtime.
	RunOption = internal.RunOption
	// Component is anything templ can render.
	Component = internal.Component
	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption
	// ResponseWriter tracks status, size and whether anything was written.
	ResponseWriter = internal.ResponseWriter
	// HTTPError carries a status code through the error handler.
	HTTPError = internal.HTTPError
	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption
	// ContextExtractor adds request-scoped attributes to log records.
	ContextExtractor = logger.ContextExtractor
)

// New creates an application. The App is immutable after creation.
//
//	app := ssrkit.New(
//	    ssrkit.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    ssrkit.WithStaticFiles("/static/", web.Static, "static"),
//	    ssrkit.WithHandlers(handlers.NewSSR(shell.DefaultConfig(false), views.App)),
//	)
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Run serves any http.Handler until SIGINT, SIGTERM or cancellation of the
// WithContext context.
func Run(h http.Handler, opts ...RunOption) error {
	return internal.Run(h, opts...)
}

// App options

// WithMiddleware adds global middleware, applied in the order given.
func WithMiddleware(mw ...Middleware) Option { return internal.WithMiddleware(mw...) }

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option { return internal.WithHandlers(h...) }

// WithStaticFiles serves subDir of fsys under pattern with long-lived caching.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithDevFiles serves dir from disk under pattern without caching.
func WithDevFiles(pattern, dir string) Option { return internal.WithDevFiles(pattern, dir) }

// WithMount attaches a plain http.Handler at pattern.
func WithMount(pattern string, h http.Handler) Option { return internal.WithMount(pattern, h) }

// WithMetricsHandler exposes h, usually promhttp.Handler(), at path.
func WithMetricsHandler(path string, h http.Handler) Option {
	return internal.WithMetricsHandler(path, h)
}

// WithRenderOptions sets the options Context.Stream renders with.
func WithRenderOptions(opts ...render.Option) Option { return internal.WithRenderOptions(opts...) }

// WithErrorHandler replaces the default plain-text error handler.
func WithErrorHandler(h ErrorHandler) Option { return internal.WithErrorHandler(h) }

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option { return internal.WithNotFoundHandler(h) }

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
//
//	ssrkit.WithHealthChecks(
//	    ssrkit.WithReadinessCheck("render", health.RenderCheck(views.App)),
//	)
func WithHealthChecks(opts ...HealthOption) Option { return internal.WithHealthChecks(opts...) }

// WithLivenessPath overrides "/health/live".
func WithLivenessPath(path string) HealthOption { return internal.WithLivenessPath(path) }

// WithReadinessPath overrides "/health/ready".
func WithReadinessPath(path string) HealthOption { return internal.WithReadinessPath(path) }

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// WithLogger installs a JSON logger tagged with component.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger installs l as the application logger.
func WithCustomLogger(l *slog.Logger) Option { return internal.WithCustomLogger(l) }

// Run options

// Address sets the listen address. Defaults to ":8080".
func Address(addr string) RunOption { return internal.Address(addr) }

// Logger sets the logger for server lifecycle events.
func Logger(l *slog.Logger) RunOption { return internal.Logger(l) }

// ShutdownTimeout bounds graceful shutdown. Defaults to 30s.
func ShutdownTimeout(d time.Duration) RunOption { return internal.ShutdownTimeout(d) }

// StartupHook runs fn before the server accepts connections. Its context is
// cancelled when shutdown begins.
func StartupHook(fn func(context.Context) error) RunOption { return internal.StartupHook(fn) }

// ShutdownHook runs fn after the server stopped accepting requests.
func ShutdownHook(fn func(context.Context) error) RunOption { return internal.ShutdownHook(fn) }

// WithContext sets the base context; cancelling it shuts the server down.
func WithContext(ctx context.Context) RunOption { return internal.WithContext(ctx) }

// Listener serves on ln instead of listening on the address.
func Listener(ln net.Listener) RunOption { return internal.Listener(ln) }

// Errors

// NewHTTPError creates an error carrying status code.
func NewHTTPError(code int, message string) *HTTPError { return internal.NewHTTPError(code, message) }

// StatusCode returns the status carried by err, or 500.
func StatusCode(err error) int { return internal.StatusCode(err) }

// IsHTTPError reports whether err wraps an *HTTPError.
func IsHTTPError(err error) bool { return internal.IsHTTPError(err) }

// AsHTTPError extracts the *HTTPError from err, or returns nil.
func AsHTTPError(err error) *HTTPError { return internal.AsHTTPError(err) }

// ErrNotFound creates a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// ErrServiceUnavailable creates a 503 error.
func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}
