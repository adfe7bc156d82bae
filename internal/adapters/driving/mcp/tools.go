package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchProjectsInput is the input schema for the search_projects tool.
type SearchProjectsInput struct {
	Query string `json:"query" jsonschema:"keywords such as a locality, promoter or project name, e.g. villas in Whitefield"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of projects to return (default 25)"`
}

// SearchProjectsOutput is the output schema for the search_projects tool.
type SearchProjectsOutput struct {
	Projects []ProjectOutput `json:"projects"`
	Count    int             `json:"count"`
	Total    int             `json:"total"`
}

// ProjectOutput is a single search hit.
type ProjectOutput struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GetProjectInput is the input schema for the get_project tool.
type GetProjectInput struct {
	ID int64 `json:"id" jsonschema:"project id from search_projects"`
}

// GetProjectOutput is the output schema for the get_project tool.
type GetProjectOutput struct {
	ID                     int64  `json:"id"`
	ProjectName            string `json:"project_name"`
	PromoterName           string `json:"promoter_name"`
	ProjectStatus          string `json:"project_status"`
	RERARegistrationNumber string `json:"rera_registration_number"`
	SourceOfWater          string `json:"source_of_water"`
	ApprovingAuthority     string `json:"approving_authority"`
	ProjectStartDate       string `json:"project_start_date"`
	ProposedCompletionDate string `json:"proposed_completion_date"`
}

const defaultToolLimit = 25

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_projects",
		Description: "Search RERA registered real-estate projects in Karnataka by keyword",
	}, s.handleSearchProjects)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_project",
		Description: "Get registration details of one project by id",
	}, s.handleGetProject)
}

// handleSearchProjects handles the search_projects tool invocation.
func (s *Server) handleSearchProjects(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchProjectsInput,
) (*mcp.CallToolResult, SearchProjectsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultToolLimit
	}

	results, err := s.ports.Projects.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchProjectsOutput{}, err
	}

	n := min(limit, results.Len())
	output := SearchProjectsOutput{
		Projects: make([]ProjectOutput, n),
		Count:    n,
		Total:    results.Len(),
	}
	for i := range n {
		output.Projects[i] = ProjectOutput{
			ID:        results[i].ID,
			Name:      results[i].Name,
			Latitude:  results[i].Latitude,
			Longitude: results[i].Longitude,
		}
	}

	return nil, output, nil
}

// handleGetProject handles the get_project tool invocation.
func (s *Server) handleGetProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetProjectInput,
) (*mcp.CallToolResult, GetProjectOutput, error) {
	details, err := s.ports.Projects.Details(ctx, input.ID)
	if err != nil {
		return nil, GetProjectOutput{}, fmt.Errorf("get_project: %w", err)
	}

	return nil, GetProjectOutput{
		ID:                     input.ID,
		ProjectName:            details.ProjectName,
		PromoterName:           details.PromoterName,
		ProjectStatus:          details.ProjectStatus,
		RERARegistrationNumber: details.RERARegistrationNumber,
		SourceOfWater:          details.SourceOfWater,
		ApprovingAuthority:     details.ApprovingAuthority,
		ProjectStartDate:       details.ProjectStartDate,
		ProposedCompletionDate: details.ProposedCompletionDate,
	}, nil
}
