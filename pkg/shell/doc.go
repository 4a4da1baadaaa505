// Package shell builds the html document that wraps the server-rendered page.
//
// In development the shell loads the unbuilt client entry and the live-reload
// client; in production it loads the built bundle resolved through the asset
// manifest.
package shell
