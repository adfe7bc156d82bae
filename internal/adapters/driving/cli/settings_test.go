package cli

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// Test helper functions in settings.go

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestReadLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  remote \nlast"))

	assert.Equal(t, "remote", readLine(reader))
	assert.Equal(t, "last", readLine(reader))
	assert.Equal(t, "", readLine(reader))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "default", orDefault(""))
	assert.Equal(t, "/data", orDefault("/data"))
}

func TestSettingsCmd_Show(t *testing.T) {
	defer setupTestServices(t)()

	out, err := executeCommand(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Backend]")
	assert.Contains(t, out, "Local (sqlite catalogue)")
	assert.Contains(t, out, "Centre: 12.9716, 77.5946")
	assert.Contains(t, out, "Zoom: 12")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_SetThenShow(t *testing.T) {
	defer setupTestServices(t)()

	out, err := executeCommand(t, "settings", "set", "backend.mode", "remote")
	require.NoError(t, err)
	assert.Contains(t, out, "backend.mode = remote")

	_, err = executeCommand(t, "settings", "set", "backend.url", "https://estatemap.example.com")
	require.NoError(t, err)

	out, err = executeCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Remote (HTTP API)")
	assert.Contains(t, out, "URL: https://estatemap.example.com")
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	defer setupTestServices(t)()

	_, err := executeCommand(t, "settings", "set", "map.zoom", "far")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = executeCommand(t, "settings", "set", "nope", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Keys(t *testing.T) {
	defer setupTestServices(t)()

	out, err := executeCommand(t, "settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "backend.mode")
	assert.Contains(t, out, "map.padding")
	assert.Contains(t, out, "server.addr")
}

func TestSettingsCmd_Wizard(t *testing.T) {
	defer setupTestServices(t)()

	out, err := executeCommandWithInput(t,
		strings.NewReader("2\nhttps://api.example.com\n3\n"), "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration Complete!")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.BackendRemote, settings.Backend.Mode)
	assert.Equal(t, "https://api.example.com", settings.Backend.URL)
	assert.InDelta(t, 3.0, settings.Backend.RatePerSecond, 1e-9)
}

func TestSettingsCmd_WizardRejectsBadRate(t *testing.T) {
	defer setupTestServices(t)()

	_, err := executeCommandWithInput(t, strings.NewReader("2\n\nfast\n"), "settings", "wizard")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	setServices(&Services{})

	for _, args := range [][]string{{"settings"}, {"settings", "keys"}, {"settings", "set", "a", "b"}, {"settings", "wizard"}} {
		_, err := executeCommand(t, args...)
		assert.ErrorIs(t, err, errNoSettingsService, strings.Join(args, " "))
	}
}
