// Package internal holds the application core behind the ssrkit facade:
// App, Router, Context and the HTTP server lifecycle.
//
// Import "github.com/dmitrymomot/ssrkit" instead; it re-exports this API.
//
// # Application
//
//	app := internal.New(
//	    internal.WithMiddleware(requestID, recoverer),
//	    internal.WithStaticFiles("/static/", web.Static, "static"),
//	    internal.WithHandlers(pages),
//	)
//	err := app.Run(":8080")
//
// Mounts (static files, metrics, live reload) and health endpoints are
// registered before handler routes, so a catch-all GET "/*" never shadows
// them.
//
// # Context
//
// Handlers receive a Context, which is also a context.Context. Pages are
// written with Stream:
//
//	func (h *Pages) page(c internal.Context) error {
//	    return c.Stream(http.StatusOK, shell.Document(h.cfg, views.App()))
//	}
//
// Stream waits until the component has finished rendering before it writes
// anything. A render error therefore reaches the error handler while the
// response is still untouched, and the client receives a plain 500 instead
// of a truncated document.
//
// # Errors
//
// A handler error is passed to the ErrorHandler set with WithErrorHandler.
// The default handler responds with the status text for StatusCode(err).
// Once a response has been written, errors are only logged.
//
// # Lifecycle
//
// Run listens on the given address (or the Listener option), runs startup
// hooks, and shuts down gracefully on SIGINT, SIGTERM or when the context
// passed with WithContext is cancelled.
package internal
