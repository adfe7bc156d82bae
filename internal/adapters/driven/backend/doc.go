// Package backend implements the project search and detail collaborators
// against a remote estatemap HTTP API.
//
// The client speaks the two endpoints served by the httpapi adapter:
//
//	POST /api/projects      {"query": "..."}  -> [{id, name, latitude, longitude}]
//	GET  /api/project/{id}                    -> {project_name, promoter_name, ...}
//
// Requests are retried on transient failures with go-retryablehttp, throttled
// client-side with a token bucket and tagged with an X-Request-ID header.
// The base URL is supplied at construction; there is no package-level default.
package backend
