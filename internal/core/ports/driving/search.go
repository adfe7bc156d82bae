package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// ProjectService answers one-shot searches and detail lookups for the
// CLI, the HTTP API and the MCP server.
type ProjectService interface {
	// Search returns summaries matching query.
	Search(ctx context.Context, query string) (domain.ResultSet, error)

	// Details returns the attributes of one project.
	Details(ctx context.Context, id int64) (*domain.ProjectDetails, error)
}

// ImportReport summarises a catalogue import.
type ImportReport struct {
	// Rows is the number of data rows read.
	Rows int

	// Imported is the number of projects stored.
	Imported int

	// Skipped is the number of rows without a project id.
	Skipped int

	// Total is the catalogue size after the import.
	Total int
}

// CatalogService loads the project register into the local catalogue.
type CatalogService interface {
	// ImportCSV reads a register export and upserts every row.
	ImportCSV(ctx context.Context, r io.Reader) (*ImportReport, error)
}
