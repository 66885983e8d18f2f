// Package records provides the record list view for one document list.
package records

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/sections"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// View lists the records of one list and dispatches edits.
type View struct {
	styles *styles.Styles
	editor driving.EditorService
	kind   domain.ListKind
	list   *list.RecordList
	err    error
}

// NewView creates a new records view.
func NewView(s *styles.Styles, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, editor: editor, list: list.NewRecordList(s)}
}

// Open shows the records of kind.
func (v *View) Open(kind domain.ListKind) {
	if kind != v.kind {
		v.list = list.NewRecordList(v.styles)
	}
	v.kind = kind
	v.Refresh()
}

// Refresh reloads the records from the editor.
func (v *View) Refresh() {
	items, err := v.editor.Document().Records(v.kind)
	v.err = err
	v.list.SetItems(items)
}

// Update handles messages for the records view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	kind := v.kind
	switch keyMsg.String() {
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSections} }
	case "a":
		return v, func() tea.Msg { return messages.RecordSelected{List: kind} }
	case "enter", "e":
		item := v.list.SelectedItem()
		if item == nil {
			return v, nil
		}
		id := item.RecordID()
		return v, func() tea.Msg { return messages.RecordSelected{List: kind, ID: id} }
	case "d":
		item := v.list.SelectedItem()
		if item == nil {
			return v, nil
		}
		err := v.editor.RemoveRecord(kind, item.RecordID())
		v.err = err
		v.Refresh()
		return v, func() tea.Msg { return messages.DocumentEdited{Back: messages.ViewRecords, Err: err} }
	case "ctrl+g":
		target, ok := sections.SuggestionFor(sections.Entry{List: kind}, "")
		if !ok {
			return v, nil
		}
		return v, func() tea.Msg { return messages.SuggestionRequested{Target: target} }
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// View renders the records view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.kind.Description()))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[a] Add  [Enter] Edit  [d] Delete  [Ctrl+G] Suggest  [Esc] Back"))
	return b.String()
}

// Kind returns the list being shown.
func (v *View) Kind() domain.ListKind {
	return v.kind
}

// Count returns the number of records shown.
func (v *View) Count() int {
	return v.list.Count()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, height-6)
}
