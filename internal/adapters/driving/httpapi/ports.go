package httpapi

import (
	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the HTTP API.
type Ports struct {
	// Projects answers searches and detail lookups.
	Projects driving.ProjectService

	// Viewport frames GeoJSON exports.
	Viewport driving.ViewportFitter
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Projects == nil {
		return ErrMissingProjectService
	}
	if p.Viewport == nil {
		return ErrMissingViewportFitter
	}
	return nil
}
