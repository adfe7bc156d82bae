package mcp

import (
	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Projects answers searches and detail lookups.
	Projects driving.ProjectService

	// Viewport frames GeoJSON search resources. Optional.
	Viewport driving.ViewportFitter
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Projects == nil {
		return ErrMissingProjectService
	}
	return nil
}
