// Package web embeds the built client assets.
//
// The client is built with:
//
//	GOOS=js GOARCH=wasm go build -o web/static/client.wasm ./cmd/client
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/static/
//
// In development web/src is served from disk at /src/ instead, so the entry
// script can change without rebuilding the server.
package web

import "embed"

// Static holds the static directory, served at /static/.
//
//go:embed static
var Static embed.FS

// ClientBundle is the path of the built client entry inside Static.
const ClientBundle = "static/client.js"

// ClientFiles lists everything the client entry loads at runtime. The last two
// are build outputs and only exist after the client build above.
var ClientFiles = []string{ClientBundle, "static/wasm_exec.js", "static/client.wasm"}
