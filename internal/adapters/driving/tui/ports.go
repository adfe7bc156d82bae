// Package tui provides an interactive terminal user interface for estatemap.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Explorer owns search results, selection and viewport.
	Explorer driving.Explorer
}

// NewPorts creates a new Ports aggregate with the given explorer.
func NewPorts(explorer driving.Explorer) *Ports {
	return &Ports{Explorer: explorer}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Explorer == nil {
		return ErrMissingExplorer
	}
	return nil
}
