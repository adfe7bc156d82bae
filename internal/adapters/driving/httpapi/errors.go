// Package httpapi serves the project catalogue over HTTP.
//
// It is the backend the remote client talks to: a keyword search endpoint, a
// detail endpoint, a GeoJSON export, health and Prometheus metrics.
package httpapi

import "errors"

// ErrMissingProjectService is returned when the project service is not provided.
var ErrMissingProjectService = errors.New("httpapi: project service is required")

// ErrMissingViewportFitter is returned when the viewport fitter is not provided.
var ErrMissingViewportFitter = errors.New("httpapi: viewport fitter is required")
