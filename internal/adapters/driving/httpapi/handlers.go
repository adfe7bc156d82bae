package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/geo"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// maxSearchBody caps the size of a POST /api/projects body.
const maxSearchBody = 64 << 10

// SearchRequest is the body of POST /api/projects.
type SearchRequest struct {
	Query string `json:"query"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

// handleSearch answers POST /api/projects with an array of project summaries.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxSearchBody)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	results, err := s.ports.Projects.Search(r.Context(), body.Query)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, domain.ErrValidation.Error())
		return
	case err != nil:
		logger.Warn("http: search %q failed: %v", body.Query, err)
		writeError(w, r, http.StatusInternalServerError, domain.ErrSearchFailed.Error())
		return
	}

	s.metrics.results.Observe(float64(results.Len()))
	render.JSON(w, r, results)
}

// handleProject answers GET /api/project/{id} with the project details.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid project id")
		return
	}

	details, err := s.ports.Projects.Details(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Project not found")
		return
	case err != nil:
		logger.Warn("http: project %d failed: %v", id, err)
		writeError(w, r, http.StatusInternalServerError, domain.ErrDetailFetchFailed.Error())
		return
	}

	render.JSON(w, r, details)
}

// handleGeoJSON answers GET /api/projects.geojson?q=... with a
// FeatureCollection framed by the fitted viewport.
func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := s.ports.Projects.Search(r.Context(), query)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, domain.ErrValidation.Error())
		return
	case err != nil:
		logger.Warn("http: geojson %q failed: %v", query, err)
		writeError(w, r, http.StatusInternalServerError, domain.ErrSearchFailed.Error())
		return
	}

	fc := geo.FeatureCollection(results, s.ports.Viewport.Compute(results), nil)
	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		logger.Warn("http: writing geojson: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{"ok": true})
}
