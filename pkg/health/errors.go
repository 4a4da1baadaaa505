package health

import "errors"

var (
	// ErrRenderFailed is reported by RenderCheck when the page tree fails to render.
	ErrRenderFailed = errors.New("health: render failed")

	// ErrMissingFile is reported by FileCheck when a file is absent.
	ErrMissingFile = errors.New("health: missing file")
)
