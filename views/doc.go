// Package views holds the page tree. The same components render on the
// server, inside the HTML shell, and in the WebAssembly client during
// hydration, so they must not depend on anything only one side has.
package views
