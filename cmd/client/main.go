//go:build js && wasm

// Command client is the WebAssembly entry that hydrates the server-rendered
// page. It renders views.App from the embedded data snapshot, verifies the
// markup inside #root matches, binds the counter and then keeps running so
// the listeners stay alive.
package main

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/ssrkit/pkg/hydrate"
	"github.com/dmitrymomot/ssrkit/pkg/logger"
	"github.com/dmitrymomot/ssrkit/pkg/shell"
	"github.com/dmitrymomot/ssrkit/views"
)

func main() {
	log := logger.New().With("component", "client")
	doc := newDocument()

	snap, err := hydrate.ReadSnapshot(doc)
	if err != nil {
		log.Error("read data snapshot", slog.String("error", err.Error()))
		panic(err)
	}

	root := hydrate.MustHydrate(context.Background(), doc, shell.RootID, views.App(),
		hydrate.WithActions(views.Actions()),
		hydrate.WithSnapshot(snap),
	)
	log.Info("hydrated", slog.Int("bindings", len(root.Bindings())))

	select {}
}
