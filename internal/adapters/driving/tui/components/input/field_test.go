package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/archie/internal/core/domain"
)

func TestField_TypingUpdatesValue(t *testing.T) {
	f := NewField(nil, domain.Field{Key: "name", Label: "Name"}, "Rating")
	f.Focus()

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Stars")})

	assert.Equal(t, "RatingStars", f.Value())
	assert.Equal(t, "name", f.Key())
}

func TestField_BlurredIgnoresKeys(t *testing.T) {
	f := NewField(nil, domain.Field{Key: "type", Label: "Type"}, "number")

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Equal(t, "number", f.Value())
	assert.False(t, f.Focused())
}

func TestField_FocusAndBlur(t *testing.T) {
	f := NewField(nil, domain.Field{Key: "required", Label: "Required", Kind: domain.FieldBool}, "")

	f.Focus()
	assert.True(t, f.Focused())
	f.Blur()
	assert.False(t, f.Focused())
}

func TestField_ViewShowsLabel(t *testing.T) {
	f := NewField(nil, domain.Field{Key: "description", Label: "Description"}, "Five stars")
	f.SetWidth(100)

	view := f.View()

	assert.Contains(t, view, "Description")
	assert.Contains(t, view, "Five stars")
}
