package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendMode_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		mode     BackendMode
		expected bool
	}{
		{name: "local is valid", mode: BackendLocal, expected: true},
		{name: "remote is valid", mode: BackendRemote, expected: true},
		{name: "empty string is invalid", mode: BackendMode(""), expected: false},
		{name: "unknown is invalid", mode: BackendMode("grpc"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.IsValid())
		})
	}
}

func TestBackendMode_Description(t *testing.T) {
	assert.Equal(t, "Local (sqlite catalogue)", BackendLocal.Description())
	assert.Equal(t, "Remote (HTTP API)", BackendRemote.Description())
	assert.Equal(t, "Unknown", BackendMode("x").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, BackendLocal, s.Backend.Mode)
	assert.Equal(t, 10*time.Second, s.Backend.Timeout)
	assert.InDelta(t, 12.9716, s.Map.CenterLat, 1e-9)
	assert.InDelta(t, 77.5946, s.Map.CenterLon, 1e-9)
	assert.Equal(t, 12, s.Map.Zoom)
	require.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"invalid mode", func(s *AppSettings) { s.Backend.Mode = "ftp" }},
		{"remote without url", func(s *AppSettings) {
			s.Backend.Mode = BackendRemote
			s.Backend.URL = ""
		}},
		{"remote with relative url", func(s *AppSettings) {
			s.Backend.Mode = BackendRemote
			s.Backend.URL = "/api"
		}},
		{"zero timeout", func(s *AppSettings) { s.Backend.Timeout = 0 }},
		{"negative rate", func(s *AppSettings) { s.Backend.RatePerSecond = -1 }},
		{"latitude out of range", func(s *AppSettings) { s.Map.CenterLat = 91 }},
		{"longitude out of range", func(s *AppSettings) { s.Map.CenterLon = -181 }},
		{"zoom too small", func(s *AppSettings) { s.Map.Zoom = 0 }},
		{"zoom too large", func(s *AppSettings) { s.Map.Zoom = 19 }},
		{"negative padding", func(s *AppSettings) { s.Map.Padding = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestAppSettings_Validate_RemoteWithURL(t *testing.T) {
	s := DefaultAppSettings()
	s.Backend.Mode = BackendRemote
	s.Backend.URL = "https://estatemap.example.com"

	assert.NoError(t, s.Validate())
}
