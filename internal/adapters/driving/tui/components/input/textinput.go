// Package input provides text input components for the TUI.
package input

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/styles"
)

// DefaultPlaceholder is shown once the user has started typing.
const DefaultPlaceholder = "Enter your search query"

// PlaceholderInterval is how long each sample query stays on screen.
const PlaceholderInterval = 2500 * time.Millisecond

// SampleQueries are cycled through the empty search box as examples.
var SampleQueries = []string{
	"Villas in Whitefield",
	"Projects by Prestige",
	"Apartments near Hebbal",
	"BWSSB projects in Varthur",
}

// SearchInput wraps a bubbles textinput with search-specific styling and
// a placeholder that cycles through sample queries until the user types.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int

	samples []string
	sample  int
	typed   bool
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	in := &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
		samples:   SampleQueries,
	}
	in.syncPlaceholder()
	return in
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, s.tick())
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if _, ok := msg.(messages.PlaceholderTick); ok {
		if s.Cycling() {
			s.sample = (s.sample + 1) % len(s.samples)
			s.syncPlaceholder()
		}
		return s, s.tick()
	}

	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyRunes {
		s.typed = true
		s.syncPlaceholder()
	}
	return s, cmd
}

func (s *SearchInput) tick() tea.Cmd {
	if len(s.samples) < 2 {
		return nil
	}
	return tea.Tick(PlaceholderInterval, func(time.Time) tea.Msg {
		return messages.PlaceholderTick{}
	})
}

func (s *SearchInput) syncPlaceholder() {
	if s.Cycling() {
		s.textinput.Placeholder = s.samples[s.sample]
		return
	}
	s.textinput.Placeholder = DefaultPlaceholder
}

// Cycling reports whether the placeholder is showing sample queries.
func (s *SearchInput) Cycling() bool {
	return !s.typed && len(s.samples) > 0 && s.textinput.Value() == ""
}

// Placeholder returns the placeholder currently shown.
func (s *SearchInput) Placeholder() string {
	return s.textinput.Placeholder
}

// SetSamples replaces the sample queries.
func (s *SearchInput) SetSamples(samples []string) {
	s.samples = samples
	s.sample = 0
	s.syncPlaceholder()
}

// UseSample fills the input with the sample on display.
// Returns false when no sample is showing.
func (s *SearchInput) UseSample() bool {
	if !s.Cycling() {
		return false
	}
	s.SetValue(s.samples[s.sample])
	return true
}

// View renders the search input.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search: ")
	input := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
	if value != "" {
		s.typed = true
	}
	s.syncPlaceholder()
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Account for label and padding
	inputWidth := width - 14
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
	s.syncPlaceholder()
}
