package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	accents := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error}
	seen := make(map[lipgloss.Color]bool)
	for _, c := range accents {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate accent %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()

	tests := map[string]lipgloss.Style{
		"title":    s.Title,
		"subtitle": s.Subtitle,
		"selected": s.Selected,
		"label":    s.Label,
		"code":     s.Code,
		"error":    s.Error,
		"status":   s.StatusBar,
	}
	for name, style := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, style.Render("RatingStars"), "RatingStars")
		})
	}
}

func TestStyles_LabelHasFixedWidth(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, lipgloss.Width(s.Label.Render("Name")), lipgloss.Width(s.Label.Render("Default value")))
}
