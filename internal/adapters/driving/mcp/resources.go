package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/geo"
)

const (
	// URIScheme is the custom URI scheme for estatemap resources.
	uriScheme = "estatemap://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "projects/{projectId}",
		Name:        "project",
		Description: "Registration details of a project",
		MIMEType:    "application/json",
	}, s.handleProjectResource)

	if s.ports.Viewport == nil {
		return
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{query}",
		Name:        "search-geojson",
		Description: "Search results as a GeoJSON FeatureCollection framed for a map",
		MIMEType:    "application/geo+json",
	}, s.handleSearchResource)
}

// handleProjectResource returns the details of one project.
func (s *Server) handleProjectResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractProjectID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	details, err := s.ports.Projects.Details(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling project: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSearchResource runs a search and returns it as GeoJSON.
func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractQuery(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results, err := s.ports.Projects.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	fc := geo.FeatureCollection(results, s.ports.Viewport.Compute(results), nil)
	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("marshalling geojson: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/geo+json",
			Text:     string(data),
		}},
	}, nil
}

// extractProjectID extracts the id from a URI like estatemap://projects/{projectId}.
func extractProjectID(uri string) (int64, bool) {
	const prefix = uriScheme + "projects/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// extractQuery extracts the unescaped query from estatemap://search/{query}.
func extractQuery(uri string) string {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	q, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(q)
}
