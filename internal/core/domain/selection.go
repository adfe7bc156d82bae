package domain

// SelectionStatus is the detail-fetch state of the selected project.
type SelectionStatus int

const (
	// SelectionIdle means nothing is selected and no request is pending.
	SelectionIdle SelectionStatus = iota
	// SelectionLoading means a detail fetch is outstanding for SelectedID.
	SelectionLoading
	// SelectionLoaded means Details hold the fetched payload for SelectedID.
	SelectionLoaded
	// SelectionFailed means the detail fetch for SelectedID failed.
	SelectionFailed
)

// String returns the string representation of the status.
func (s SelectionStatus) String() string {
	switch s {
	case SelectionIdle:
		return "idle"
	case SelectionLoading:
		return "loading"
	case SelectionLoaded:
		return "loaded"
	case SelectionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Pending reports whether a detail request is outstanding.
func (s SelectionStatus) Pending() bool {
	return s == SelectionLoading
}

// Selection is the single currently-highlighted project and its detail-fetch state.
//
// Details is non-nil only when Status is SelectionLoaded, and then it is the
// payload fetched for SelectedID.
type Selection struct {
	// SelectedID is the selected project, nil when nothing is selected.
	SelectedID *int64

	// Details is the fetched payload.
	Details *ProjectDetails

	// Status is the fetch state.
	Status SelectionStatus

	// Err is the fetch failure when Status is SelectionFailed.
	Err error
}

// IsSelected reports whether id is the selected project, whatever the status.
func (s Selection) IsSelected(id int64) bool {
	return s.SelectedID != nil && *s.SelectedID == id
}

// Highlighted reports whether the marker for id renders in the
// distinguished state. Only the selected id while loading or loaded is.
func (s Selection) Highlighted(id int64) bool {
	if !s.IsSelected(id) {
		return false
	}
	return s.Status == SelectionLoading || s.Status == SelectionLoaded
}

// ID returns the selected id and whether one is set.
func (s Selection) ID() (int64, bool) {
	if s.SelectedID == nil {
		return 0, false
	}
	return *s.SelectedID, true
}
