// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// ProjectList displays the result set with a movable cursor.
// The cursor is local to the list; the selection comes from the explorer.
type ProjectList struct {
	results   domain.ResultSet
	selection domain.Selection
	cursor    int
	styles    *styles.Styles
	width     int
	height    int
}

// NewProjectList creates a new project list component.
func NewProjectList(s *styles.Styles) *ProjectList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProjectList{
		styles: s,
		width:  40,
		height: 10,
	}
}

// Init initialises the project list.
func (l *ProjectList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ProjectList) Update(msg tea.Msg) (*ProjectList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the project list.
func (l *ProjectList) View() string {
	if len(l.results) == 0 {
		return l.styles.Muted.Render("No projects")
	}

	lines := make([]string, 0, len(l.results)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Projects (%d)", len(l.results))), "")

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.cursor >= visible {
		start = l.cursor - visible + 1
	}
	end := min(start+visible, len(l.results))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, l.results[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *ProjectList) renderRow(index int, p domain.ProjectSummary) string {
	indicator := "  "
	if index == l.cursor {
		indicator = "> "
	}

	mark := " "
	switch {
	case l.selection.Highlighted(p.ID):
		mark = "●"
	case l.selection.IsSelected(p.ID):
		mark = "!"
	}

	name := truncate(p.Name, max(l.width-6, 10))
	row := fmt.Sprintf("%s%s %s", indicator, mark, name)

	switch {
	case index == l.cursor:
		return l.styles.Selected.Render(row)
	case l.selection.Highlighted(p.ID):
		return l.styles.Label.Render(row)
	default:
		return l.styles.Normal.Render(row)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// SetResults replaces the listed projects. The cursor stays on the same
// project when it is still listed and returns to the top otherwise.
func (l *ProjectList) SetResults(results domain.ResultSet) {
	var current int64
	hadCurrent := false
	if p, ok := l.Current(); ok {
		current, hadCurrent = p.ID, true
	}

	l.results = results
	l.cursor = 0
	if !hadCurrent {
		return
	}
	for i, p := range results {
		if p.ID == current {
			l.cursor = i
			return
		}
	}
}

// SetSelection updates which project is highlighted.
func (l *ProjectList) SetSelection(sel domain.Selection) {
	l.selection = sel
}

// Results returns the listed projects.
func (l *ProjectList) Results() domain.ResultSet {
	return l.results
}

// Cursor returns the index under the cursor.
func (l *ProjectList) Cursor() int {
	return l.cursor
}

// SetCursor moves the cursor to index if it is in range.
func (l *ProjectList) SetCursor(index int) {
	if index >= 0 && index < len(l.results) {
		l.cursor = index
	}
}

// Current returns the project under the cursor.
func (l *ProjectList) Current() (domain.ProjectSummary, bool) {
	if l.cursor < 0 || l.cursor >= len(l.results) {
		return domain.ProjectSummary{}, false
	}
	return l.results[l.cursor], true
}

// MoveUp moves the cursor up.
func (l *ProjectList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor down.
func (l *ProjectList) MoveDown() {
	if l.cursor < len(l.results)-1 {
		l.cursor++
	}
}

// SetDimensions sets the component dimensions.
func (l *ProjectList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of projects.
func (l *ProjectList) Count() int {
	return len(l.results)
}

// IsEmpty returns whether the list is empty.
func (l *ProjectList) IsEmpty() bool {
	return len(l.results) == 0
}
