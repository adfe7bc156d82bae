package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/styles"
)

func TestNewSearchInput(t *testing.T) {
	s := styles.DefaultStyles()
	input := NewSearchInput(s)

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.True(t, input.Focused())
}

func TestNewSearchInput_NilStyles(t *testing.T) {
	input := NewSearchInput(nil)

	require.NotNil(t, input)
	assert.NotNil(t, input.styles)
}

func TestSearchInput_Init(t *testing.T) {
	input := NewSearchInput(nil)

	cmd := input.Init()

	// Blink command should be returned
	assert.NotNil(t, cmd)
}

func TestSearchInput_Update(t *testing.T) {
	input := NewSearchInput(nil)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
	updated, cmd := input.Update(msg)

	assert.Equal(t, input, updated)
	// textinput returns nil cmd for regular key presses
	_ = cmd
	assert.Equal(t, "a", input.Value())
}

func TestSearchInput_View(t *testing.T) {
	input := NewSearchInput(nil)

	view := input.View()

	assert.NotEmpty(t, view)
	assert.Contains(t, view, "Search")
}

func TestSearchInput_Value(t *testing.T) {
	input := NewSearchInput(nil)

	input.SetValue("test query")

	assert.Equal(t, "test query", input.Value())
}

func TestSearchInput_SetValue(t *testing.T) {
	input := NewSearchInput(nil)

	input.SetValue("hello world")

	assert.Equal(t, "hello world", input.Value())
}

func TestSearchInput_Focus(t *testing.T) {
	input := NewSearchInput(nil)
	input.Blur()

	assert.False(t, input.Focused())

	cmd := input.Focus()

	assert.NotNil(t, cmd)
	assert.True(t, input.Focused())
}

func TestSearchInput_Blur(t *testing.T) {
	input := NewSearchInput(nil)

	assert.True(t, input.Focused())

	input.Blur()

	assert.False(t, input.Focused())
}

func TestSearchInput_Focused(t *testing.T) {
	input := NewSearchInput(nil)

	assert.True(t, input.Focused())

	input.Blur()
	assert.False(t, input.Focused())
}

func TestSearchInput_SetWidth(t *testing.T) {
	input := NewSearchInput(nil)

	input.SetWidth(100)

	assert.Equal(t, 100, input.Width())
}

func TestSearchInput_SetWidth_Minimum(t *testing.T) {
	input := NewSearchInput(nil)

	input.SetWidth(10) // Very small, should use minimum

	assert.Equal(t, 10, input.Width())
	// Internal textinput width should be at least 20
}

func TestSearchInput_Width(t *testing.T) {
	input := NewSearchInput(nil)

	assert.Equal(t, 50, input.Width()) // Default width
}

func TestSearchInput_Reset(t *testing.T) {
	input := NewSearchInput(nil)
	input.SetValue("some text")

	input.Reset()

	assert.Equal(t, "", input.Value())
}

func TestSearchInput_Update_MultipleKeys(t *testing.T) {
	input := NewSearchInput(nil)

	keys := []rune{'h', 'e', 'l', 'l', 'o'}
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{k}}
		input.Update(msg)
	}

	assert.Equal(t, "hello", input.Value())
}

func TestSearchInput_Update_Backspace(t *testing.T) {
	input := NewSearchInput(nil)
	input.SetValue("test")

	msg := tea.KeyMsg{Type: tea.KeyBackspace}
	input.Update(msg)

	assert.Equal(t, "tes", input.Value())
}

func TestSearchInput_PlaceholderStartsWithFirstSample(t *testing.T) {
	input := NewSearchInput(nil)

	assert.True(t, input.Cycling())
	assert.Equal(t, SampleQueries[0], input.Placeholder())
}

func TestSearchInput_PlaceholderTickCycles(t *testing.T) {
	input := NewSearchInput(nil)
	input.SetSamples([]string{"one", "two", "three"})

	_, cmd := input.Update(messages.PlaceholderTick{})
	assert.NotNil(t, cmd, "tick reschedules itself")
	assert.Equal(t, "two", input.Placeholder())

	input.Update(messages.PlaceholderTick{})
	input.Update(messages.PlaceholderTick{})
	assert.Equal(t, "one", input.Placeholder(), "wraps around")
}

func TestSearchInput_TypingStopsCycling(t *testing.T) {
	input := NewSearchInput(nil)
	input.SetSamples([]string{"one", "two"})

	input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	input.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "", input.Value())
	assert.False(t, input.Cycling())
	assert.Equal(t, DefaultPlaceholder, input.Placeholder())

	input.Update(messages.PlaceholderTick{})
	assert.Equal(t, DefaultPlaceholder, input.Placeholder())
}

func TestSearchInput_UseSample(t *testing.T) {
	input := NewSearchInput(nil)
	input.SetSamples([]string{"villas in Whitefield", "projects by Prestige"})
	input.Update(messages.PlaceholderTick{})

	require.True(t, input.UseSample())
	assert.Equal(t, "projects by Prestige", input.Value())

	assert.False(t, input.UseSample(), "no sample once the box has text")
}

func TestSearchInput_SingleSampleDoesNotTick(t *testing.T) {
	input := NewSearchInput(nil)
	input.SetSamples([]string{"only"})

	_, cmd := input.Update(messages.PlaceholderTick{})

	assert.Nil(t, cmd)
	assert.Equal(t, "only", input.Placeholder())
}
