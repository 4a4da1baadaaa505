// Package ssrkit is a small server-side rendering stack for templ components.
//
// A single catch-all route streams the page tree into an HTML shell; a
// WebAssembly client renders the same tree again in the browser, checks the
// markup matches and attaches event listeners (hydration).
//
// # Quick Start
//
//	cfg := shell.DefaultConfig(false)
//	app := ssrkit.New(
//	    ssrkit.WithStaticFiles("/static/", web.Static, "static"),
//	    ssrkit.WithHandlers(handlers.NewSSR(cfg, views.App)),
//	)
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Pieces
//
//   - [Context.Stream] renders a component through pkg/render and writes it
//     only once the render has completely finished.
//   - pkg/shell wraps the body in the document with the client script.
//   - pkg/ssrdata snapshots values resolved during the server render so the
//     client renders from identical data.
//   - pkg/hydrate compares client and server markup and binds listeners.
//   - pkg/devreload pushes reload messages to the browser in development.
//
// The cmd/ssrkit binary wires all of it with configuration, logging,
// metrics and health checks.
package ssrkit
