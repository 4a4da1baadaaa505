package render

import "errors"

// Sentinel errors for the render package.
var (
	// ErrNilComponent is returned when ToStream is called without a component.
	ErrNilComponent = errors.New("render: nil component")

	// ErrTimeout wraps the render error when the WithTimeout limit was reached.
	ErrTimeout = errors.New("render: timeout")

	// ErrRenderPanic wraps a panic raised by a component during rendering.
	ErrRenderPanic = errors.New("render: component panicked")

	// ErrStreamClosed is returned when a component writes after the render finished.
	ErrStreamClosed = errors.New("render: stream closed")
)
