package ssrdata

import "errors"

var (
	// ErrNoProvider is returned by Use when no Provider is rendering above it.
	ErrNoProvider = errors.New("ssrdata: no provider in context")

	// ErrDecode is returned when a snapshot or a snapshot value cannot be decoded.
	ErrDecode = errors.New("ssrdata: decode snapshot")
)
