// Package sections lists the editable parts of the document.
package sections

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// Entry is one row: either a singleton section or a record list.
type Entry struct {
	Section domain.SectionKind
	List    domain.ListKind
}

// Label returns the display name of the entry.
func (e Entry) Label() string {
	if e.List != "" {
		return e.List.Description()
	}
	return e.Section.Description()
}

// Entries returns the rows in form order.
func Entries() []Entry {
	return []Entry{
		{Section: domain.SectionIdentity},
		{List: domain.ListProps},
		{List: domain.ListVariables},
		{List: domain.ListEffects},
		{Section: domain.SectionState},
		{List: domain.ListInteractions},
		{List: domain.ListEmitters},
		{List: domain.ListConditionals},
		{Section: domain.SectionVisuals},
		{Section: domain.SectionRobustness},
	}
}

// View lists sections with a fill marker.
type View struct {
	styles   *styles.Styles
	editor   driving.EditorService
	entries  []Entry
	selected int
	width    int
	height   int
}

// NewView creates a new sections view.
func NewView(s *styles.Styles, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, editor: editor, entries: Entries(), width: 80, height: 24}
}

// Update handles messages for the sections view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case "enter":
		e := v.entries[v.selected]
		return v, func() tea.Msg {
			if e.List != "" {
				return messages.ListSelected{List: e.List}
			}
			return messages.SectionSelected{Section: e.Section}
		}
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	}
	return v, nil
}

// View renders the sections list.
func (v *View) View() string {
	doc := v.editor.Document()

	var b strings.Builder
	title := "Sections"
	if doc.Identity.Name != "" {
		title = "Sections: " + doc.Identity.Name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	for i, e := range v.entries {
		row := fmt.Sprintf("%-24s %s", e.Label(), v.marker(doc, e))
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(row))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Edit  [Esc] Back"))
	return b.String()
}

// marker shows a record count for lists and a filled dot for sections.
func (v *View) marker(doc domain.DocumentState, e Entry) string {
	if e.List != "" {
		records, err := doc.Records(e.List)
		if err != nil || len(records) == 0 {
			return v.styles.Muted.Render("-")
		}
		return v.styles.Success.Render(fmt.Sprintf("%d", len(records)))
	}

	set, err := doc.Section(e.Section)
	if err != nil {
		return ""
	}
	for _, f := range set.Fields() {
		if set.FieldValue(f.Key) != "" {
			return v.styles.Success.Render("●")
		}
	}
	return v.styles.Muted.Render("○")
}

// Selected returns the entry under the cursor.
func (v *View) Selected() Entry {
	return v.entries[v.selected]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
