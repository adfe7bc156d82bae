package services

import (
	"fmt"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// DetailTicket stamps a detail fetch for one project id.
type DetailTicket struct {
	Seq uint64
	ID  int64
}

// SelectionController holds at most one selected project and its fetched details.
//
//	Idle --select--> Loading --success--> Loaded
//	Loading --failure--> Failed
//	Loaded|Failed --select(other id)--> Loading
//	any --reset--> Idle
//
// SelectionController is not safe for concurrent use; the Explorer serialises access.
type SelectionController struct {
	seq uint64
	sel domain.Selection
}

// NewSelectionController creates an idle controller.
func NewSelectionController() *SelectionController {
	return &SelectionController{}
}

// Select moves to Loading for id and returns the ticket for its fetch.
//
// Returns domain.ErrUnknownProject, with no change, when id is not in results.
// Re-selecting the already loaded id is a no-op and reports started=false.
func (c *SelectionController) Select(id int64, results domain.ResultSet) (DetailTicket, bool, error) {
	if !results.Contains(id) {
		return DetailTicket{}, false, fmt.Errorf("%w: %d", domain.ErrUnknownProject, id)
	}

	if c.sel.IsSelected(id) && c.sel.Status == domain.SelectionLoaded {
		return DetailTicket{}, false, nil
	}

	c.seq++
	selected := id
	c.sel = domain.Selection{
		SelectedID: &selected,
		Status:     domain.SelectionLoading,
	}

	return DetailTicket{Seq: c.seq, ID: id}, true, nil
}

// IsCurrent reports whether t belongs to the outstanding fetch for the selected id.
func (c *SelectionController) IsCurrent(t DetailTicket) bool {
	return t.Seq != 0 && t.Seq == c.seq && c.sel.IsSelected(t.ID) && c.sel.Status.Pending()
}

// Resolve commits details for t. Stale tickets are discarded and return false.
func (c *SelectionController) Resolve(t DetailTicket, details domain.ProjectDetails) bool {
	if !c.IsCurrent(t) {
		return false
	}

	c.sel.Details = &details
	c.sel.Status = domain.SelectionLoaded
	c.sel.Err = nil
	return true
}

// Reject records a failed fetch for t, keeping the selected id so the
// failure can be shown against it. Stale tickets are discarded and return false.
func (c *SelectionController) Reject(t DetailTicket, err error) bool {
	if !c.IsCurrent(t) {
		return false
	}

	c.sel.Details = nil
	c.sel.Status = domain.SelectionFailed
	c.sel.Err = fmt.Errorf("%w: %w", domain.ErrDetailFetchFailed, err)
	return true
}

// Reset clears the selection. Any outstanding fetch becomes stale.
func (c *SelectionController) Reset() {
	c.seq++
	c.sel = domain.Selection{Status: domain.SelectionIdle}
}

// Selection returns a copy of the current selection that shares no memory
// with the controller.
func (c *SelectionController) Selection() domain.Selection {
	out := c.sel
	if c.sel.SelectedID != nil {
		id := *c.sel.SelectedID
		out.SelectedID = &id
	}
	if c.sel.Details != nil {
		details := *c.sel.Details
		out.Details = &details
	}
	return out
}
