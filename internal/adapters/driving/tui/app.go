package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/views/explorer"
	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The explorer drives the App: every committed transition arrives as a
// messages.SnapshotChanged and the views re-render from it.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// explorerView is the search, list, map and details view.
	explorerView *explorer.View

	// snapshots receives explorer state; unsubscribe ends the stream.
	snapshots   <-chan domain.Snapshot
	unsubscribe func()

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// The app subscribes to the explorer immediately; call Close when done.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	view := explorer.NewView(s, km, ports.Explorer)
	view.SetSnapshot(ports.Explorer.Snapshot())

	snapshots, unsubscribe := ports.Explorer.Subscribe()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		explorerView: view,
		snapshots:    snapshots,
		unsubscribe:  unsubscribe,
		currentView:  messages.ViewExplorer,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.explorerView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("estatemap"),
		a.explorerView.Init(),
		a.waitForSnapshot(),
	)
}

// waitForSnapshot blocks on the subscription and delivers the next snapshot.
// It is re-armed after every delivery.
func (a *App) waitForSnapshot() tea.Cmd {
	ch := a.snapshots
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return messages.SubscriptionClosed{}
		}
		return messages.SnapshotChanged{Snapshot: snap}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.SnapshotChanged:
		logger.Debug("tui: snapshot revision %d", msg.Snapshot.Revision)
		a.err = nil
		a.explorerView, _ = a.explorerView.Update(msg)
		return a, a.waitForSnapshot()

	case messages.SubscriptionClosed:
		logger.Debug("tui: snapshot subscription closed")
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.explorerView, cmd = a.explorerView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink, placeholder ticks) to the view.
	a.explorerView, cmd = a.explorerView.Update(msg)
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		switch {
		case key.Matches(msg, a.keymap.Back), key.Matches(msg, a.keymap.Help):
			a.currentView = messages.ViewExplorer
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		}
		return a, nil
	}

	// Single-letter shortcuts only apply while browsing; in the search box
	// they are text.
	if !a.explorerView.InputFocused() {
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keymap.Help):
			a.currentView = messages.ViewHelp
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.explorerView, cmd = a.explorerView.Update(msg)
	a.err = a.explorerView.Err()
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.currentView == messages.ViewHelp {
		return a.viewHelp()
	}
	return a.explorerView.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Search:
  (type)      Enter search query
  tab         Use the example query shown
  enter       Submit search
  esc         Back to results

Results:
  j/k, ↑/↓    Move through projects
  enter       Show project details
  /, n        New search
  ?           Help
  q           Quit

The map frames every result. The selected project is drawn as ◉
with its name; * marks several projects in one cell.

ctrl+c quits from anywhere.

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close ends the explorer subscription. It is safe to call more than once.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Snapshot returns the snapshot the view is rendering.
func (a *App) Snapshot() domain.Snapshot {
	return a.explorerView.Snapshot()
}

// Query returns the text in the search box.
func (a *App) Query() string {
	return a.explorerView.Query()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.explorerView.SetDimensions(width, height)
}
