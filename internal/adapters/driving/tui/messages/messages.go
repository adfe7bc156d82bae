// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// SnapshotChanged carries the explorer state after a committed transition.
type SnapshotChanged struct {
	Snapshot domain.Snapshot
}

// SubscriptionClosed is sent when the snapshot channel is closed.
type SubscriptionClosed struct{}

// PlaceholderTick advances the sample query shown in an empty search box.
type PlaceholderTick struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewExplorer is the search, list, map and details view.
	ViewExplorer ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewExplorer:
		return "explorer"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that a command was rejected.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
