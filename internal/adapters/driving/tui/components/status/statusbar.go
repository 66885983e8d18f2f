// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/promptdoc"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateError   State = "error"
	StateSaved   State = "saved"
)

// Bar displays the open draft, the document outline and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	bindings []key.Binding
	state    State
	message  string
	draft    string
	outline  []promptdoc.SectionSummary
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	parts := make([]string, 0, 3)
	if s.draft != "" {
		parts = append(parts, s.styles.Subtitle.Render(s.draft))
	} else {
		parts = append(parts, s.styles.Muted.Render("unsaved"))
	}
	if summary := s.summary(); summary != "" {
		parts = append(parts, s.styles.Muted.Render(summary))
	}

	switch s.state {
	case StateWorking:
		parts = append(parts, s.styles.Warning.Render(orText(s.message, "Working...")))
	case StateError:
		parts = append(parts, s.styles.Error.Render("Error: "+orText(s.message, "unknown")))
	case StateSaved:
		parts = append(parts, s.styles.Success.Render(orText(s.message, "Saved")))
	case StateReady:
		if s.message != "" {
			parts = append(parts, s.styles.Normal.Render(s.message))
		}
	}
	return strings.Join(parts, "  ")
}

// summary counts the filled sections and the records across them.
func (s *Bar) summary() string {
	if len(s.outline) == 0 {
		return ""
	}
	var present, records int
	for _, sec := range s.outline {
		if sec.Present {
			present++
		}
		records += sec.Records
	}
	return fmt.Sprintf("%d/%d sections, %d entries", present, len(s.outline), records)
}

func (s *Bar) renderRight() string {
	bindings := s.bindings
	if bindings == nil {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func orText(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// SetState sets the current state and message.
func (s *Bar) SetState(state State, message string) {
	s.state = state
	s.message = message
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetDraft sets the name of the open draft. Empty means unsaved.
func (s *Bar) SetDraft(name string) {
	s.draft = name
}

// SetOutline sets the document outline shown next to the draft name.
func (s *Bar) SetOutline(outline []promptdoc.SectionSummary) {
	s.outline = outline
}

// SetBindings overrides the hints shown on the right. Nil restores the default.
func (s *Bar) SetBindings(bindings []key.Binding) {
	s.bindings = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the state and message.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
