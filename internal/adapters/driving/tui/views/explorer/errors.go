package explorer

import "errors"

// Error definitions for the explorer view.
var (
	// ErrNoExplorer indicates that no explorer was provided.
	ErrNoExplorer = errors.New("explorer is required")
)
