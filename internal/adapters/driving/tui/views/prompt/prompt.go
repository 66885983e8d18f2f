// Package prompt shows the assembled prompt in a scrolling viewport.
package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// reserved lines for the title and help footer.
const reserved = 5

// View is the prompt viewer.
type View struct {
	styles   *styles.Styles
	editor   driving.EditorService
	viewport viewport.Model
	content  string
}

// NewView creates a new prompt view.
func NewView(s *styles.Styles, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, editor: editor, viewport: viewport.New(80, 24-reserved)}
}

// Open re-renders the prompt and scrolls to the top.
func (v *View) Open() {
	v.content = v.editor.Prompt()
	v.viewport.SetContent(v.content)
	v.viewport.GotoTop()
}

// Update handles messages for the prompt view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the prompt view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Prompt"))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %d lines  %3.0f%%",
		strings.Count(v.content, "\n")+1, v.viewport.ScrollPercent()*100)))
	b.WriteString("\n\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Scroll  [PgUp/PgDn] Page  [Esc] Back"))
	return b.String()
}

// Content returns the prompt being shown.
func (v *View) Content() string {
	return v.content
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = max(height-reserved, 1)
}
