package domain

import (
	"fmt"
	"net/url"
	"time"
)

// BackendMode selects where searches and detail fetches are answered.
type BackendMode string

// Available backend modes.
const (
	// BackendLocal answers from the sqlite catalogue in the data directory.
	BackendLocal BackendMode = "local"

	// BackendRemote answers from an estatemap HTTP API.
	BackendRemote BackendMode = "remote"
)

// IsValid returns true if the mode is recognised.
func (m BackendMode) IsValid() bool {
	return m == BackendLocal || m == BackendRemote
}

// String returns the string representation.
func (m BackendMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m BackendMode) Description() string {
	switch m {
	case BackendLocal:
		return "Local (sqlite catalogue)"
	case BackendRemote:
		return "Remote (HTTP API)"
	default:
		return "Unknown"
	}
}

// BackendSettings configures the search and detail collaborators.
type BackendSettings struct {
	// Mode selects the collaborator implementation.
	Mode BackendMode

	// URL is the API base address for remote mode.
	URL string

	// Timeout bounds a single remote request.
	Timeout time.Duration

	// RatePerSecond throttles remote requests. Zero disables throttling.
	RatePerSecond float64
}

// MapSettings configures the viewport policy.
type MapSettings struct {
	// CenterLat and CenterLon place the default viewport.
	CenterLat float64
	CenterLon float64

	// Zoom is the default viewport zoom level.
	Zoom int

	// Padding is the margin in degrees added around fitted results.
	Padding float64
}

// ServerSettings configures `estatemap serve`.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RequestsPerMinute is the per-IP request budget. Zero disables the limit.
	RequestsPerMinute int
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Backend BackendSettings
	Map     MapSettings
	Server  ServerSettings

	// DataDir holds the sqlite catalogue. Empty means ~/.estatemap/data.
	DataDir string
}

// DefaultAppSettings returns sensible defaults: a local catalogue and a map
// centred on Bangalore.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			Mode:          BackendLocal,
			URL:           "http://localhost:5000",
			Timeout:       10 * time.Second,
			RatePerSecond: 5,
		},
		Map: MapSettings{
			CenterLat: 12.9716,
			CenterLon: 77.5946,
			Zoom:      12,
			Padding:   0.01,
		},
		Server: ServerSettings{
			Addr:              ":5000",
			RequestsPerMinute: 100,
		},
	}
}

// Validate checks that the settings are usable.
func (s AppSettings) Validate() error {
	if !s.Backend.Mode.IsValid() {
		return fmt.Errorf("%w: backend mode %q", ErrInvalidInput, s.Backend.Mode)
	}
	if s.Backend.Mode == BackendRemote {
		u, err := url.Parse(s.Backend.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: backend url %q", ErrInvalidInput, s.Backend.URL)
		}
	}
	if s.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend timeout must be positive", ErrInvalidInput)
	}
	if s.Backend.RatePerSecond < 0 {
		return fmt.Errorf("%w: backend rate must not be negative", ErrInvalidInput)
	}
	if s.Map.CenterLat < -90 || s.Map.CenterLat > 90 {
		return fmt.Errorf("%w: map centre latitude %v", ErrInvalidInput, s.Map.CenterLat)
	}
	if s.Map.CenterLon < -180 || s.Map.CenterLon > 180 {
		return fmt.Errorf("%w: map centre longitude %v", ErrInvalidInput, s.Map.CenterLon)
	}
	if s.Map.Zoom < 1 || s.Map.Zoom > 18 {
		return fmt.Errorf("%w: map zoom %d", ErrInvalidInput, s.Map.Zoom)
	}
	if s.Map.Padding < 0 {
		return fmt.Errorf("%w: map padding must not be negative", ErrInvalidInput)
	}
	return nil
}
