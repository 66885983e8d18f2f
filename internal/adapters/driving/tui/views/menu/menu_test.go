package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.items, 7)
	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, view.Init())
}

func TestView_NavigationStaysInBounds(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())

	for range 10 {
		view.Update(keyRune('j'))
	}
	assert.Equal(t, len(view.items)-1, view.Selected())

	view.Update(keyRune('k'))
	assert.Equal(t, len(view.items)-2, view.Selected())
}

func TestView_EnterChangesView(t *testing.T) {
	tests := []struct {
		index int
		want  messages.ViewType
	}{
		{0, messages.ViewSections},
		{1, messages.ViewPrompt},
		{2, messages.ViewBuild},
		{3, messages.ViewDrafts},
		{4, messages.ViewSettings},
		{5, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.index

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)

			msg, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.want, msg.View)
		})
	}
}

func TestView_QuitItem(t *testing.T) {
	view := NewView(nil)
	view.selected = len(view.items) - 1

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_QKeyQuits(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Render(t *testing.T) {
	view := NewView(nil)
	assert.Equal(t, "Initialising...", view.View())

	view.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	out := view.View()

	assert.Contains(t, out, "archie")
	assert.Contains(t, out, "Sections")
	assert.Contains(t, out, "edit the component description")
	assert.Contains(t, out, "Quit")
}
