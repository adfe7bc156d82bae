package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/custodia-labs/estatemap/internal/logger"
)

// Options tunes the server.
type Options struct {
	// RequestsPerMinute limits each client IP. Zero disables the limit.
	RequestsPerMinute int
}

// Server is the HTTP API.
type Server struct {
	ports   *Ports
	opts    Options
	metrics *metrics
	router  chi.Router
}

// NewServer creates a new HTTP API server with the given ports.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:   ports,
		opts:    opts,
		metrics: newMetrics(),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(echoRequestID)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		if s.opts.RequestsPerMinute > 0 {
			r.Use(httprate.LimitByIP(s.opts.RequestsPerMinute, time.Minute))
		}
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Post("/projects", s.handleSearch)
		r.Get("/projects.geojson", s.handleGeoJSON)
		r.Get("/project/{id}", s.handleProject)
	})

	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("http: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
