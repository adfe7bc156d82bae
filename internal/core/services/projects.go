package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driven"
	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// ProjectService answers one-shot searches and lookups against a backend.
type ProjectService struct {
	backend driven.ProjectBackend
}

// NewProjectService creates a new project service.
func NewProjectService(backend driven.ProjectBackend) *ProjectService {
	return &ProjectService{backend: backend}
}

// Search returns summaries matching query, de-duplicated by id.
func (s *ProjectService) Search(ctx context.Context, query string) (domain.ResultSet, error) {
	logger.Section("Project Search")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrValidation
	}
	if s.backend == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, errNoSearcher)
	}

	results, err := s.backend.SearchProjects(ctx, query)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	rs := uniqueByID(results)
	logger.Info("Final results: %d", rs.Len())
	return rs, nil
}

// Details returns the attributes of one project.
func (s *ProjectService) Details(ctx context.Context, id int64) (*domain.ProjectDetails, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: project id %d", domain.ErrInvalidInput, id)
	}
	if s.backend == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDetailFetchFailed, errNoFetcher)
	}

	logger.Debug("Fetching details for project %d", id)
	details, err := s.backend.FetchProjectDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project %d: %w", id, err)
	}
	if details == nil {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return details, nil
}
