package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Explorer Errors.

	// ErrValidation indicates an empty or whitespace-only query.
	// No request is sent.
	ErrValidation = errors.New("query must not be empty")

	// ErrSearchFailed indicates the search collaborator failed.
	// The previous results stay visible.
	ErrSearchFailed = errors.New("search failed")

	// ErrUnknownProject indicates a selection target that is not in the
	// current result set. The selection is left unchanged.
	ErrUnknownProject = errors.New("unknown project")

	// ErrDetailFetchFailed indicates the detail collaborator failed.
	// The selected id is kept and its details are cleared.
	ErrDetailFetchFailed = errors.New("project details unavailable")
)
