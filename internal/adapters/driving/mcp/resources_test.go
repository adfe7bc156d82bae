package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/geo"
)

func TestExtractProjectID(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		wantID int64
		wantOK bool
	}{
		{name: "valid project URI", uri: "estatemap://projects/42", wantID: 42, wantOK: true},
		{name: "invalid prefix", uri: "file://projects/42"},
		{name: "not a number", uri: "estatemap://projects/abc"},
		{name: "zero id", uri: "estatemap://projects/0"},
		{name: "empty URI", uri: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := extractProjectID(tt.uri)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestExtractQuery(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "plain", uri: "estatemap://search/whitefield", expected: "whitefield"},
		{name: "escaped", uri: "estatemap://search/villas%20in%20Whitefield", expected: "villas in Whitefield"},
		{name: "bad escape", uri: "estatemap://search/%zz", expected: ""},
		{name: "invalid prefix", uri: "estatemap://projects/1", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractQuery(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleProjectResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns project details", func(t *testing.T) {
		mockProjects := &mockProjectService{
			details: &domain.ProjectDetails{ProjectName: "Brigade Utopia", SourceOfWater: "BWSSB"},
		}
		server, err := NewServer(&Ports{Projects: mockProjects})
		require.NoError(t, err)

		result, err := server.handleProjectResource(ctx, makeReadResourceRequest("estatemap://projects/5"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, int64(5), mockProjects.lastID)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"project_name": "Brigade Utopia"`)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Projects: &mockProjectService{}})
		require.NoError(t, err)

		_, err = server.handleProjectResource(ctx, makeReadResourceRequest("estatemap://projects/x"))
		require.Error(t, err)
	})

	t.Run("unknown project returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Projects: &mockProjectService{err: domain.ErrNotFound}})
		require.NoError(t, err)

		_, err = server.handleProjectResource(ctx, makeReadResourceRequest("estatemap://projects/9"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("backend failure is wrapped", func(t *testing.T) {
		server, err := NewServer(&Ports{Projects: &mockProjectService{err: errors.New("timeout")}})
		require.NoError(t, err)

		_, err = server.handleProjectResource(ctx, makeReadResourceRequest("estatemap://projects/9"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting project")
	})
}

func TestServer_handleSearchResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns geojson", func(t *testing.T) {
		mockProjects := &mockProjectService{
			results: domain.ResultSet{{ID: 7, Name: "Prestige Lakeside Habitat Villas", Latitude: 12.9698, Longitude: 77.75}},
		}
		vp := domain.Viewport{Bounds: domain.Bounds{MinLat: 12.95, MaxLat: 12.98, MinLon: 77.74, MaxLon: 77.76}}
		server, err := NewServer(&Ports{Projects: mockProjects, Viewport: mockViewport{vp: vp}})
		require.NoError(t, err)

		result, err := server.handleSearchResource(ctx, makeReadResourceRequest("estatemap://search/villas%20in%20Whitefield"))

		require.NoError(t, err)
		assert.Equal(t, "villas in Whitefield", mockProjects.lastQuery)
		require.Len(t, result.Contents, 1)

		var fc geo.GeoJSONFeatureCollection
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &fc))
		require.Len(t, fc.Features, 1)
		assert.Equal(t, []float64{77.74, 12.95, 77.76, 12.98}, fc.BBox)
		assert.Equal(t, []float64{77.75, 12.9698}, fc.Features[0].Geometry.Coordinates)
	})

	t.Run("empty query returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Projects: &mockProjectService{}, Viewport: mockViewport{}})
		require.NoError(t, err)

		_, err = server.handleSearchResource(ctx, makeReadResourceRequest("estatemap://search/%20"))
		require.Error(t, err)
	})

	t.Run("search failure is wrapped", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Projects: &mockProjectService{err: domain.ErrSearchFailed},
			Viewport: mockViewport{},
		})
		require.NoError(t, err)

		_, err = server.handleSearchResource(ctx, makeReadResourceRequest("estatemap://search/hebbal"))
		require.ErrorIs(t, err, domain.ErrSearchFailed)
	})
}
