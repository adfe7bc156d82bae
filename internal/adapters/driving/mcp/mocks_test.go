package mcp

import (
	"context"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// mockProjectService is a mock implementation of driving.ProjectService.
type mockProjectService struct {
	results   domain.ResultSet
	details   *domain.ProjectDetails
	err       error
	lastQuery string
	lastID    int64
}

func (m *mockProjectService) Search(_ context.Context, query string) (domain.ResultSet, error) {
	m.lastQuery = query
	return m.results, m.err
}

func (m *mockProjectService) Details(_ context.Context, id int64) (*domain.ProjectDetails, error) {
	m.lastID = id
	return m.details, m.err
}

// mockViewport returns a fixed viewport.
type mockViewport struct {
	vp domain.Viewport
}

func (m mockViewport) Compute(domain.ResultSet) domain.Viewport {
	return m.vp
}
