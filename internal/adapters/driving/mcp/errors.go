// Package mcp provides an MCP (Model Context Protocol) server adapter for estatemap.
// It lets AI assistants search the project register and read project details.
package mcp

import "errors"

// ErrMissingProjectService is returned when the project service is not provided.
var ErrMissingProjectService = errors.New("mcp: project service is required")
