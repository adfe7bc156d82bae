// Package explorer provides the main view of the TUI: the search box, the
// project list, the map, the details panel and the status bar.
//
// The view never keeps state of its own beyond focus and the list cursor.
// Everything it draws comes from the latest explorer snapshot.
package explorer

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/components/details"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/components/mapview"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// View composes the explorer components.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ProjectList
	mapview   *mapview.Map
	details   *details.Panel
	statusbar *status.Bar

	explorer driving.Explorer
	ctx      context.Context

	snapshot   domain.Snapshot
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a query, false = browsing results
}

// NewView creates a new explorer view.
func NewView(s *styles.Styles, km *keymap.KeyMap, explorer driving.Explorer) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewProjectList(s),
		mapview:    mapview.New(s),
		details:    details.NewPanel(s),
		statusbar:  status.NewBar(s, km),
		explorer:   explorer,
		ctx:        context.Background(),
		focusInput: true,
	}
	v.layout(80, 24)
	return v
}

// WithContext sets the context passed to explorer commands.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the explorer view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SnapshotChanged:
		v.SetSnapshot(msg.Snapshot)
		return v, nil

	case messages.ErrorOccurred:
		v.showError(msg.Err)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, v.keymap.Select):
		v.selectCurrent()
		return v, nil
	case key.Matches(msg, v.keymap.NewSearch):
		return v, v.focusSearch()
	case key.Matches(msg, v.keymap.Up), key.Matches(msg, v.keymap.Down):
		v.list, _ = v.list.Update(msg)
		return v, nil
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Search):
		v.submit()
		return v, nil
	case key.Matches(msg, v.keymap.Sample):
		v.input.UseSample()
		return v, nil
	case key.Matches(msg, v.keymap.Back):
		if !v.list.IsEmpty() {
			v.browse()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) submit() {
	if v.explorer == nil {
		v.showError(ErrNoExplorer)
		return
	}

	query := v.input.Value()
	if err := v.explorer.SubmitQuery(v.ctx, query); err != nil {
		logger.Debug("tui: query %q rejected: %v", query, err)
		v.showError(err)
		return
	}
	v.err = nil
	v.browse()
}

func (v *View) selectCurrent() {
	if v.explorer == nil {
		v.showError(ErrNoExplorer)
		return
	}

	project, ok := v.list.Current()
	if !ok {
		return
	}
	if err := v.explorer.Select(v.ctx, project.ID); err != nil {
		// A search may have replaced the results since the last snapshot.
		if errors.Is(err, domain.ErrUnknownProject) {
			logger.Debug("tui: project %d no longer listed", project.ID)
		}
		v.showError(err)
		return
	}
	v.err = nil
}

func (v *View) browse() {
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetBrowsing(true)
}

func (v *View) focusSearch() tea.Cmd {
	v.focusInput = true
	v.input.SetValue("")
	v.statusbar.SetBrowsing(false)
	return v.input.Focus()
}

func (v *View) showError(err error) {
	if err == nil {
		return
	}
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// SetSnapshot projects a snapshot onto every component.
func (v *View) SetSnapshot(snap domain.Snapshot) {
	v.snapshot = snap
	v.err = nil
	v.list.SetResults(snap.Results)
	v.list.SetSelection(snap.Selection)
	v.mapview.SetSnapshot(snap)
	v.details.SetSnapshot(snap)
	v.statusbar.SetSnapshot(snap)
}

// View renders the explorer view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	header := v.styles.Title.Render("estatemap")

	left := lipgloss.JoinVertical(lipgloss.Left,
		v.list.View(),
		"",
		v.details.View(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(v.leftWidth()).Render(left),
		"  ",
		v.mapview.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		v.input.View(),
		"",
		body,
		"",
		v.statusbar.View(),
	)
}

func (v *View) leftWidth() int {
	return max(v.width*2/5, 24)
}

func (v *View) layout(width, height int) {
	v.width = width
	v.height = height

	left := v.leftWidth()
	body := max(height-8, 8) // header, input, status and gaps

	v.input.SetWidth(width)
	v.list.SetDimensions(left, body/2)
	v.details.SetWidth(left)
	v.mapview.SetDimensions(width-left-4, body-3) // frame and caption
	v.statusbar.SetWidth(width)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.layout(width, height)
	v.ready = true
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the search box.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the text in the search box.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Snapshot returns the last snapshot applied to the view.
func (v *View) Snapshot() domain.Snapshot {
	return v.snapshot
}

// Cursor returns the list cursor.
func (v *View) Cursor() int {
	return v.list.Cursor()
}

// Err returns the last rejected command, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the search box has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}
