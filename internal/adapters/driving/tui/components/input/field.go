// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/core/domain"
)

// Field wraps a bubbles textinput for one domain field.
type Field struct {
	field     domain.Field
	textinput textinput.Model
	styles    *styles.Styles
}

// NewField creates an input for f holding value.
func NewField(s *styles.Styles, f domain.Field, value string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 2000
	ti.Width = 50
	ti.Prompt = ""
	if f.Kind == domain.FieldBool {
		ti.Placeholder = "true / false"
	}
	ti.SetValue(value)

	return &Field{field: f, textinput: ti, styles: s}
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input on one line.
func (f *Field) View() string {
	label := f.styles.Label.Render(f.field.Label)
	if f.Focused() {
		label = f.styles.Selected.Width(22).Render(f.field.Label)
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, f.styles.InputField.Render(f.textinput.View()))
}

// Key returns the field key.
func (f *Field) Key() string {
	return f.field.Key
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width available to the input.
func (f *Field) SetWidth(width int) {
	inputWidth := width - 30
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}
