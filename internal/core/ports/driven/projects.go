package driven

import (
	"context"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// ProjectSearcher answers a natural-language query with matching projects.
// Query understanding belongs to the implementation.
type ProjectSearcher interface {
	// SearchProjects returns matching summaries in display order.
	SearchProjects(ctx context.Context, query string) ([]domain.ProjectSummary, error)
}

// ProjectDetailsFetcher returns the full attributes of a project.
type ProjectDetailsFetcher interface {
	// FetchProjectDetails returns domain.ErrNotFound for an unknown id.
	FetchProjectDetails(ctx context.Context, id int64) (*domain.ProjectDetails, error)
}

// ProjectBackend is both collaborators the explorer consumes.
type ProjectBackend interface {
	ProjectSearcher
	ProjectDetailsFetcher
}

// ProjectCatalog persists the project register and answers keyword queries.
// Backed by SQLite.
type ProjectCatalog interface {
	ProjectBackend

	// Upsert stores or replaces projects by ID.
	Upsert(ctx context.Context, projects []domain.Project) error

	// Count returns the number of stored projects.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
