package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingExplorer.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingExplorer_Message(t *testing.T) {
	assert.Contains(t, ErrMissingExplorer.Error(), "explorer")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
