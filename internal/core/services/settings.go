package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driven"
	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBackendMode    = "backend.mode"
	keyBackendURL     = "backend.url"
	keyBackendTimeout = "backend.timeout_seconds"
	keyBackendRate    = "backend.rate_per_second"
	keyDataDir        = "data.dir"
	keyMapCenterLat   = "map.center_lat"
	keyMapCenterLon   = "map.center_lon"
	keyMapZoom        = "map.zoom"
	keyMapPadding     = "map.padding"
	keyServerAddr     = "server.addr"
	keyServerRPM      = "server.requests_per_minute"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			Mode:          s.getBackendMode(defaults.Backend.Mode),
			URL:           s.getString(keyBackendURL, defaults.Backend.URL),
			Timeout:       time.Duration(s.getInt(keyBackendTimeout, int(defaults.Backend.Timeout/time.Second))) * time.Second,
			RatePerSecond: s.getFloat(keyBackendRate, defaults.Backend.RatePerSecond),
		},
		Map: domain.MapSettings{
			CenterLat: s.getFloat(keyMapCenterLat, defaults.Map.CenterLat),
			CenterLon: s.getFloat(keyMapCenterLon, defaults.Map.CenterLon),
			Zoom:      s.getInt(keyMapZoom, defaults.Map.Zoom),
			Padding:   s.getFloat(keyMapPadding, defaults.Map.Padding),
		},
		Server: domain.ServerSettings{
			Addr:              s.getString(keyServerAddr, defaults.Server.Addr),
			RequestsPerMinute: s.getInt(keyServerRPM, defaults.Server.RequestsPerMinute),
		},
		DataDir: s.configStore.GetString(keyDataDir), // No default - empty means ~/.estatemap/data
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyBackendMode, settings.Backend.Mode.String()},
		{keyBackendURL, settings.Backend.URL},
		{keyBackendTimeout, int(settings.Backend.Timeout / time.Second)},
		{keyBackendRate, settings.Backend.RatePerSecond},
		{keyMapCenterLat, settings.Map.CenterLat},
		{keyMapCenterLon, settings.Map.CenterLon},
		{keyMapZoom, settings.Map.Zoom},
		{keyMapPadding, settings.Map.Padding},
		{keyServerAddr, settings.Server.Addr},
		{keyServerRPM, settings.Server.RequestsPerMinute},
		{keyDataDir, settings.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting from its string form. The resulting
// settings must validate.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := applySetting(settings, key, value); err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys lists the settable config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyBackendMode, keyBackendURL, keyBackendTimeout, keyBackendRate,
		keyDataDir, keyMapCenterLat, keyMapCenterLon, keyMapZoom, keyMapPadding,
		keyServerAddr, keyServerRPM,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

//nolint:gocyclo // one case per key
func applySetting(settings *domain.AppSettings, key, value string) error {
	var err error
	switch key {
	case keyBackendMode:
		mode := domain.BackendMode(value)
		if !mode.IsValid() {
			return fmt.Errorf("%w: backend mode %q", domain.ErrInvalidInput, value)
		}
		settings.Backend.Mode = mode
	case keyBackendURL:
		settings.Backend.URL = value
	case keyBackendTimeout:
		var secs int
		secs, err = strconv.Atoi(value)
		settings.Backend.Timeout = time.Duration(secs) * time.Second
	case keyBackendRate:
		settings.Backend.RatePerSecond, err = strconv.ParseFloat(value, 64)
	case keyDataDir:
		settings.DataDir = value
	case keyMapCenterLat:
		settings.Map.CenterLat, err = strconv.ParseFloat(value, 64)
	case keyMapCenterLon:
		settings.Map.CenterLon, err = strconv.ParseFloat(value, 64)
	case keyMapZoom:
		settings.Map.Zoom, err = strconv.Atoi(value)
	case keyMapPadding:
		settings.Map.Padding, err = strconv.ParseFloat(value, 64)
	case keyServerAddr:
		settings.Server.Addr = value
	case keyServerRPM:
		settings.Server.RequestsPerMinute, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	return nil
}

// Helper methods for reading config values with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); exists {
		return s.configStore.GetInt(key)
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); exists {
		return s.configStore.GetFloat(key)
	}
	return defaultVal
}

func (s *SettingsService) getBackendMode(defaultVal domain.BackendMode) domain.BackendMode {
	val := s.configStore.GetString(keyBackendMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.BackendMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
