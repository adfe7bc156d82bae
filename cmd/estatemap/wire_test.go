package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estatemap/internal/adapters/driven/backend"
	"github.com/custodia-labs/estatemap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/estatemap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/cli"
	"github.com/custodia-labs/estatemap/internal/core/domain"
)

func TestBuildServices_Demo(t *testing.T) {
	svc, err := buildServices(cli.Options{ConfigDir: t.TempDir(), Demo: true})
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	require.NotNil(t, svc.Projects)
	require.NotNil(t, svc.Catalog)
	require.NotNil(t, svc.Explorer)
	require.NotNil(t, svc.Settings)
	require.NotNil(t, svc.Viewport)

	results, err := svc.Projects.Search(context.Background(), "villas in Whitefield")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(7), results[0].ID)
	assert.Equal(t, int64(21), results[1].ID)
}

func TestBuildServices_LocalUsesDataDir(t *testing.T) {
	configDir := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(
		filepath.Join(configDir, "config.toml"),
		[]byte("[data]\ndir = \""+filepath.ToSlash(dataDir)+"\"\n"),
		0o600,
	))

	svc, err := buildServices(cli.Options{ConfigDir: configDir})
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	require.NotNil(t, svc.Catalog)
	assert.FileExists(t, filepath.Join(dataDir, "projects.db"))

	results, err := svc.Projects.Search(context.Background(), "whitefield")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBuildServices_MapSettings(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(configDir, "config.toml"),
		[]byte("[map]\ncenter_lat = 12.5\ncenter_lon = 77.5\nzoom = 9\n"),
		0o600,
	))

	svc, err := buildServices(cli.Options{ConfigDir: configDir, Demo: true})
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	vp := svc.Viewport.Compute(domain.ResultSet{})
	assert.True(t, vp.Default)
	assert.Equal(t, 9, vp.Zoom)
	assert.InDelta(t, 12.5, vp.Center.Lat, 1e-9)
}

func TestOpenBackend(t *testing.T) {
	t.Run("demo", func(t *testing.T) {
		settings := domain.DefaultAppSettings()

		c, err := openBackend(&settings, true)

		require.NoError(t, err)
		assert.IsType(t, &memory.ProjectStore{}, c.projects)
		assert.NotNil(t, c.catalog)
	})

	t.Run("local", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.DataDir = t.TempDir()

		c, err := openBackend(&settings, false)

		require.NoError(t, err)
		defer c.close()
		assert.IsType(t, &sqlite.Store{}, c.projects)
	})

	t.Run("remote", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.Backend.Mode = domain.BackendRemote
		settings.Backend.URL = "https://estatemap.example.com"

		c, err := openBackend(&settings, false)

		require.NoError(t, err)
		assert.IsType(t, &backend.Client{}, c.projects)
		assert.Nil(t, c.catalog)
		assert.Nil(t, c.close)
	})

	t.Run("remote with bad url", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.Backend.Mode = domain.BackendRemote
		settings.Backend.URL = "not a url"

		_, err := openBackend(&settings, false)

		assert.ErrorIs(t, err, backend.ErrInvalidBaseURL)
	})

	t.Run("unknown mode", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.Backend.Mode = "carrier-pigeon"

		_, err := openBackend(&settings, false)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestBuildServices_BadBackendKeepsSettings(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(configDir, "config.toml"),
		[]byte("[backend]\nmode = \"remote\"\nurl = \"ftp://nowhere\"\n"),
		0o600,
	))

	svc, err := buildServices(cli.Options{ConfigDir: configDir})

	require.NoError(t, err)
	assert.NotNil(t, svc.Settings)
	assert.Nil(t, svc.Projects)
	assert.Nil(t, svc.Close)
}
