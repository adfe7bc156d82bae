package domain

// SearchStatus is the Result Store's sub-state.
type SearchStatus int

const (
	// SearchReady means no search is outstanding and the last one (if any) succeeded.
	SearchReady SearchStatus = iota
	// SearchSearching means a submitted query has not resolved yet.
	SearchSearching
	// SearchFailed means the most recent search failed. Prior results remain.
	SearchFailed
)

// String returns the string representation of the status.
func (s SearchStatus) String() string {
	switch s {
	case SearchReady:
		return "ready"
	case SearchSearching:
		return "searching"
	case SearchFailed:
		return "search_failed"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the explorer state.
// Renderers are pure projections of the latest snapshot.
type Snapshot struct {
	// Revision increases with every committed transition.
	Revision uint64

	// Query is the most recently submitted query text.
	Query string

	// Results is the current result set. Callers must not modify it.
	Results ResultSet

	// SearchStatus is the Result Store status.
	SearchStatus SearchStatus

	// SearchErr is the last search failure when SearchStatus is SearchFailed.
	SearchErr error

	// Selection is the current selection.
	Selection Selection

	// Viewport frames Results.
	Viewport Viewport
}

// HasSearched reports whether any query has committed or failed.
func (s Snapshot) HasSearched() bool {
	return s.Query != ""
}
