package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driven"
)

// DefaultSearchLimit caps the number of summaries returned by a search.
const DefaultSearchLimit = 200

// Ensure ProjectStore implements the interface.
var _ driven.ProjectCatalog = (*ProjectStore)(nil)

// ProjectStore is an in-memory project catalogue. It applies the same
// eligibility filters and keyword matching as the sqlite catalogue and is
// used for tests and the demo dataset.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[int64]domain.Project
	limit    int
}

// NewProjectStore creates an empty in-memory catalogue.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		projects: make(map[int64]domain.Project),
		limit:    DefaultSearchLimit,
	}
}

// SearchProjects returns eligible projects matching every query term, ordered by id.
func (s *ProjectStore) SearchProjects(ctx context.Context, query string) ([]domain.ProjectSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terms := domain.SearchTerms(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.ProjectSummary, 0)
	for _, p := range s.projects {
		if p.Searchable() && p.Matches(terms) {
			results = append(results, p.ProjectSummary)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})

	if len(results) > s.limit {
		results = results[:s.limit]
	}
	return results, nil
}

// FetchProjectDetails returns the details of a project by id.
func (s *ProjectStore) FetchProjectDetails(ctx context.Context, id int64) (*domain.ProjectDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	details := p.ProjectDetails
	return &details, nil
}

// Upsert inserts or replaces projects by id.
func (s *ProjectStore) Upsert(ctx context.Context, projects []domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range projects {
		s.projects[p.ID] = p
	}
	return nil
}

// Count returns the number of stored projects, eligible or not.
func (s *ProjectStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects), nil
}

// Close is a no-op for the memory store.
func (s *ProjectStore) Close() error {
	return nil
}
