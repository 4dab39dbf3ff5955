package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrClosed is returned by operations on a store after Close.
	ErrClosed = errors.New("contact store closed")

	// ErrCorruptData indicates persisted content that cannot be decoded.
	ErrCorruptData = errors.New("contact store data corrupt")
)
