// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady         State = "ready"
	StateSearching     State = "searching"
	StateSearchFailed  State = "search_failed"
	StateResults       State = "results"
	StateLoadingDetail State = "loading_detail"
	StateDetailFailed  State = "detail_failed"
	StateError         State = "error"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	resultCount int
	browsing    bool
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// SetSnapshot derives state, message and count from an explorer snapshot.
// Search activity takes precedence over the detail fetch.
func (s *Bar) SetSnapshot(snap domain.Snapshot) {
	s.resultCount = snap.Results.Len()
	s.message = ""

	switch {
	case snap.SearchStatus == domain.SearchSearching:
		s.state = StateSearching
	case snap.SearchStatus == domain.SearchFailed:
		s.state = StateSearchFailed
		if snap.SearchErr != nil {
			s.message = snap.SearchErr.Error()
		}
	case snap.Selection.Status == domain.SelectionLoading:
		s.state = StateLoadingDetail
	case snap.Selection.Status == domain.SelectionFailed:
		s.state = StateDetailFailed
		if snap.Selection.Err != nil {
			s.message = snap.Selection.Err.Error()
		}
	case snap.HasSearched():
		s.state = StateResults
	default:
		s.state = StateReady
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		return s.styles.Muted.Render("Searching...")
	case StateSearchFailed:
		return s.styles.Error.Render(withMessage("Search failed", s.message))
	case StateLoadingDetail:
		return s.styles.Muted.Render("Loading project details...")
	case StateDetailFailed:
		return s.styles.Error.Render(withMessage("Details unavailable", s.message))
	case StateError:
		return s.styles.Error.Render(withMessage("Error", s.message))
	case StateResults:
		if s.resultCount == 0 {
			return s.styles.Warning.Render("No projects found")
		}
		return s.styles.Normal.Render(fmt.Sprintf("%d projects", s.resultCount))
	case StateReady:
	}
	return s.styles.Muted.Render("Ready")
}

func withMessage(prefix, msg string) string {
	if msg == "" {
		return prefix
	}
	return prefix + ": " + msg
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.browsing && s.resultCount > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetBrowsing switches the hints between the search box and the list.
func (s *Bar) SetBrowsing(browsing bool) {
	s.browsing = browsing
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
}
