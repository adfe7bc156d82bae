package tui

import "errors"

// ErrMissingExplorer is returned when the explorer is not provided.
var ErrMissingExplorer = errors.New("tui: explorer is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
