// Package form provides a field form that edits any section or record
// through its field descriptors.
package form

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/sections"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// Target identifies what the form edits. Exactly one of Section or List is set.
// For lists an empty ID adds a new record.
type Target struct {
	Section domain.SectionKind
	List    domain.ListKind
	ID      string
}

func (t Target) title() string {
	if t.List == "" {
		return t.Section.Description()
	}
	if t.ID == "" {
		return "New entry: " + t.List.Description()
	}
	return "Edit entry: " + t.List.Description()
}

// back is the view a finished form returns to.
func (t Target) back() messages.ViewType {
	if t.List != "" {
		return messages.ViewRecords
	}
	return messages.ViewSections
}

// View edits the fields of one target.
type View struct {
	styles *styles.Styles
	editor driving.EditorService

	target Target
	inputs []*input.Field
	focus  int
	err    error

	width  int
	height int
}

// NewView creates a new form view.
func NewView(s *styles.Styles, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, editor: editor, width: 80, height: 24}
}

// Open builds inputs for t from the current document.
func (v *View) Open(t Target) tea.Cmd {
	v.target = t
	v.err = nil
	v.focus = 0

	fields, values, err := v.load(t)
	if err != nil {
		v.inputs = nil
		v.err = err
		return nil
	}

	v.inputs = make([]*input.Field, len(fields))
	for i, f := range fields {
		v.inputs[i] = input.NewField(v.styles, f, values.FieldValue(f.Key))
		v.inputs[i].SetWidth(v.width)
	}
	if len(v.inputs) == 0 {
		return nil
	}
	return v.inputs[0].Focus()
}

// Reload refreshes input values from the document, keeping focus.
func (v *View) Reload() {
	_, values, err := v.load(v.target)
	if err != nil {
		v.err = err
		return
	}
	for _, in := range v.inputs {
		in.SetValue(values.FieldValue(in.Key()))
	}
}

func (v *View) load(t Target) ([]domain.Field, domain.FieldSet, error) {
	doc := v.editor.Document()

	if t.List == "" {
		set, err := doc.Section(t.Section)
		if err != nil {
			return nil, nil, err
		}
		return set.Fields(), set, nil
	}

	fields := domain.FieldsOf(t.List)
	if t.ID == "" {
		return fields, emptySet{}, nil
	}
	records, err := doc.Records(t.List)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range records {
		if r.RecordID() == t.ID {
			return fields, r, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: no %s entry %s", domain.ErrNotFound, t.List, t.ID)
}

// emptySet supplies blank values for a new record.
type emptySet struct{}

func (emptySet) Fields() []domain.Field  { return nil }
func (emptySet) FieldValue(string) string { return "" }

// Update handles messages for the form view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "esc":
		back := v.target.back()
		return v, func() tea.Msg { return messages.ViewChanged{View: back} }
	case "tab", "down":
		return v, v.move(1)
	case "shift+tab", "up":
		return v, v.move(-1)
	case "enter":
		if v.focus < len(v.inputs)-1 {
			return v, v.move(1)
		}
		return v, v.save()
	case "ctrl+s":
		return v, v.save()
	case "ctrl+g":
		return v, v.suggest()
	}

	if len(v.inputs) == 0 {
		return v, nil
	}
	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *View) move(delta int) tea.Cmd {
	if len(v.inputs) == 0 {
		return nil
	}
	v.inputs[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.inputs)) % len(v.inputs)
	return v.inputs[v.focus].Focus()
}

// Values returns the current input values by field key.
func (v *View) Values() map[string]string {
	values := make(map[string]string, len(v.inputs))
	for _, in := range v.inputs {
		values[in.Key()] = in.Value()
	}
	return values
}

// apply writes the inputs to the editor. A new record becomes an
// existing one so that saving twice does not add it twice.
func (v *View) apply() error {
	values := v.Values()
	if v.target.List == "" {
		return v.editor.SetSectionFields(v.target.Section, values)
	}
	if v.target.ID == "" {
		id, err := v.editor.AddRecord(v.target.List, values)
		if err != nil {
			return err
		}
		v.target.ID = id
		return nil
	}
	return v.editor.UpdateRecord(v.target.List, v.target.ID, values)
}

func (v *View) save() tea.Cmd {
	err := v.apply()
	v.err = err
	back := v.target.back()
	return func() tea.Msg {
		return messages.DocumentEdited{Back: back, Err: err}
	}
}

// suggest applies pending edits so the suggestion sees them, then asks
// for the target matching the focused field. Record forms have none.
func (v *View) suggest() tea.Cmd {
	if v.target.List != "" || len(v.inputs) == 0 {
		return nil
	}
	target, ok := sections.SuggestionFor(sections.Entry{Section: v.target.Section}, v.inputs[v.focus].Key())
	if !ok {
		return nil
	}
	if err := v.apply(); err != nil {
		v.err = err
		return nil
	}
	return func() tea.Msg { return messages.SuggestionRequested{Target: target} }
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.target.title()))
	b.WriteString("\n\n")

	for _, in := range v.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "[Tab] Next  [Enter] Next/Save  [Ctrl+S] Save  [Esc] Back"
	if v.target.List == "" {
		help = "[Tab] Next  [Ctrl+S] Save  [Ctrl+G] Suggest  [Esc] Back"
	}
	b.WriteString(v.styles.Help.Render(help))
	return b.String()
}

// Target returns what the form edits.
func (v *View) Target() Target {
	return v.target
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, in := range v.inputs {
		in.SetWidth(width)
	}
}
