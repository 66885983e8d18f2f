package records

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/services"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newEditorWithProps(t *testing.T, names ...string) (*services.EditorService, []string) {
	t.Helper()
	editor := services.NewEditorService()
	ids := make([]string, len(names))
	for i, n := range names {
		id, err := editor.AddRecord(domain.ListProps, map[string]string{"name": n})
		require.NoError(t, err)
		ids[i] = id
	}
	return editor, ids
}

func TestOpen_ListsRecords(t *testing.T) {
	editor, _ := newEditorWithProps(t, "value", "max")
	v := NewView(nil, editor)
	v.Open(domain.ListProps)

	assert.Equal(t, 2, v.Count())
	out := v.View()
	assert.Contains(t, out, "Props")
	assert.Contains(t, out, "value")
	assert.Contains(t, out, "max")
}

func TestAdd_RequestsBlankRecord(t *testing.T) {
	v := NewView(nil, services.NewEditorService())
	v.Open(domain.ListEffects)

	_, cmd := v.Update(keyRune('a'))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.RecordSelected{List: domain.ListEffects}, cmd())
}

func TestEnter_EditsSelectedRecord(t *testing.T) {
	editor, ids := newEditorWithProps(t, "value", "max")
	v := NewView(nil, editor)
	v.Open(domain.ListProps)

	v.Update(keyRune('j'))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.RecordSelected{List: domain.ListProps, ID: ids[1]}, cmd())
}

func TestEnter_EmptyListDoesNothing(t *testing.T) {
	v := NewView(nil, services.NewEditorService())
	v.Open(domain.ListProps)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, cmd = v.Update(keyRune('d'))
	assert.Nil(t, cmd)
}

func TestDelete_RemovesByID(t *testing.T) {
	editor, ids := newEditorWithProps(t, "value", "max", "onChange")
	v := NewView(nil, editor)
	v.Open(domain.ListProps)

	v.Update(keyRune('j'))
	_, cmd := v.Update(keyRune('d'))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentEdited{Back: messages.ViewRecords}, cmd())

	props := editor.Document().Props
	require.Len(t, props, 2)
	assert.Equal(t, ids[0], props[0].ID)
	assert.Equal(t, ids[2], props[1].ID)
	assert.Equal(t, 2, v.Count())
}

func TestSuggest_UsesListTarget(t *testing.T) {
	v := NewView(nil, services.NewEditorService())
	v.Open(domain.ListConditionals)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.SuggestionRequested{Target: domain.SuggestInteractions}, cmd())
}

func TestEsc_ReturnsToSections(t *testing.T) {
	v := NewView(nil, services.NewEditorService())
	v.Open(domain.ListProps)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSections}, cmd())
}
