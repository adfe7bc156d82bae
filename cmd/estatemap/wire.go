package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/estatemap/internal/adapters/driven/backend"
	"github.com/custodia-labs/estatemap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/estatemap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/estatemap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/cli"
	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driven"
	"github.com/custodia-labs/estatemap/internal/core/services"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// remoteRetries is the number of retries for a failed remote request.
const remoteRetries = 2

// collaborators are the backend the explorer and project service talk to,
// plus the catalogue when the backend is local.
type collaborators struct {
	projects driven.ProjectBackend
	catalog  driven.ProjectCatalog
	close    func() error
}

// buildServices is the composition root. It reads settings, picks the
// backend for the configured mode and wires the services.
func buildServices(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	policy := services.NewViewportPolicy(settings.Map)
	svc := &cli.Services{
		Settings: settingsService,
		Viewport: policy,
	}

	c, err := openBackend(settings, opts.Demo)
	if err != nil {
		// Settings commands must keep working so a bad backend can be fixed.
		fmt.Fprintf(os.Stderr, "warning: backend unavailable: %v\n", err)
		return svc, nil
	}

	explorer := services.NewExplorer(c.projects, c.projects, policy)

	svc.Projects = services.NewProjectService(c.projects)
	svc.Explorer = explorer
	if c.catalog != nil {
		svc.Catalog = services.NewCatalogService(c.catalog)
	}
	svc.Close = func() error {
		explorer.Wait()
		if c.close == nil {
			return nil
		}
		return c.close()
	}
	return svc, nil
}

func openBackend(settings *domain.AppSettings, demo bool) (*collaborators, error) {
	if demo {
		logger.Info("Using the demo catalogue")
		store := memory.NewProjectStore()
		if err := store.Upsert(context.Background(), memory.DemoProjects()); err != nil {
			return nil, fmt.Errorf("loading demo catalogue: %w", err)
		}
		return &collaborators{projects: store, catalog: store, close: store.Close}, nil
	}

	switch settings.Backend.Mode {
	case domain.BackendRemote:
		logger.Info("Using remote backend %s", settings.Backend.URL)
		client, err := backend.NewClient(backend.Config{
			BaseURL:       settings.Backend.URL,
			Timeout:       settings.Backend.Timeout,
			RatePerSecond: settings.Backend.RatePerSecond,
			RetryMax:      remoteRetries,
		})
		if err != nil {
			return nil, err
		}
		return &collaborators{projects: client}, nil

	case domain.BackendLocal:
		store, err := sqlite.NewStore(settings.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening catalogue: %w", err)
		}
		logger.Info("Using local catalogue %s", store.Path())
		return &collaborators{projects: store, catalog: store, close: store.Close}, nil

	default:
		return nil, fmt.Errorf("%w: backend mode %q", domain.ErrInvalidInput, settings.Backend.Mode)
	}
}
