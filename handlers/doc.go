// Package handlers contains the HTTP handlers of the ssrkit server.
package handlers
