// Package drafts provides the saved drafts view for the TUI.
package drafts

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// View lists drafts and moves documents between drafts and the editor.
type View struct {
	ctx    context.Context
	styles *styles.Styles
	drafts driving.DraftService
	editor driving.EditorService

	items    []domain.Draft
	selected int
	current  string
	loading  bool
	err      error
}

// NewView creates a new drafts view.
func NewView(ctx context.Context, s *styles.Styles, drafts driving.DraftService, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{ctx: ctx, styles: s, drafts: drafts, editor: editor}
}

// Init loads the draft list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	ctx, drafts := v.ctx, v.drafts
	return func() tea.Msg {
		list, err := drafts.List(ctx)
		return messages.DraftsLoaded{Drafts: list, Err: err}
	}
}

// SetContext sets the context service calls run under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetCurrent marks the draft the editor document belongs to.
func (v *View) SetCurrent(id string) {
	v.current = id
}

// Current returns the id of the open draft, or "" when unsaved.
func (v *View) Current() string {
	return v.current
}

// Update handles messages for the drafts view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.DraftsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.items = msg.Drafts
			if v.selected >= len(v.items) {
				v.selected = max(len(v.items)-1, 0)
			}
		}
		return v, nil

	case messages.DraftSaved:
		v.err = msg.Err
		if msg.Err == nil {
			return v, v.load()
		}
		return v, nil

	case messages.DraftDeleted:
		v.err = msg.Err
		if msg.Err == nil {
			return v, v.load()
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case "enter":
		if d := v.selectedDraft(); d != nil {
			return v, v.open(d.ID)
		}
	case "n":
		return v, v.create()
	case "w":
		return v, v.save()
	case "d":
		if d := v.selectedDraft(); d != nil {
			return v, v.remove(d.ID)
		}
	case "r":
		v.loading = true
		return v, v.load()
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	}
	return v, nil
}

func (v *View) selectedDraft() *domain.Draft {
	if v.selected < 0 || v.selected >= len(v.items) {
		return nil
	}
	return &v.items[v.selected]
}

func (v *View) open(id string) tea.Cmd {
	ctx, drafts := v.ctx, v.drafts
	return func() tea.Msg {
		d, err := drafts.Get(ctx, id)
		return messages.DraftOpened{Draft: d, Err: err}
	}
}

// create saves the editor document as a new draft named after the component.
func (v *View) create() tea.Cmd {
	ctx, drafts := v.ctx, v.drafts
	doc := v.editor.Document()
	return func() tea.Msg {
		d, err := drafts.Create(ctx, doc.Identity.Name, doc)
		return messages.DraftSaved{Draft: d, Err: err}
	}
}

// save writes the editor document to the open draft, or creates one.
func (v *View) save() tea.Cmd {
	if v.current == "" {
		return v.create()
	}
	ctx, drafts, id := v.ctx, v.drafts, v.current
	doc := v.editor.Document()
	return func() tea.Msg {
		d, err := drafts.Get(ctx, id)
		if err != nil {
			return messages.DraftSaved{Err: err}
		}
		d.State = doc
		if err := drafts.Save(ctx, d); err != nil {
			return messages.DraftSaved{Err: err}
		}
		return messages.DraftSaved{Draft: d}
	}
}

func (v *View) remove(id string) tea.Cmd {
	ctx, drafts := v.ctx, v.drafts
	return func() tea.Msg {
		return messages.DraftDeleted{ID: id, Err: drafts.Delete(ctx, id)}
	}
}

// View renders the drafts view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Drafts"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading drafts..."))
		b.WriteString("\n")
	case len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("No drafts yet. Press [n] to save the current document."))
		b.WriteString("\n")
	default:
		for i, d := range v.items {
			b.WriteString(v.renderRow(i, d))
			b.WriteString("\n")
		}
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Enter] Open  [w] Save  [n] Save as new  [d] Delete  [r] Reload  [Esc] Back"))
	return b.String()
}

func (v *View) renderRow(i int, d domain.Draft) string {
	marker := " "
	if d.ID == v.current {
		marker = "*"
	}
	row := fmt.Sprintf("%s %-28s %s", marker, d.DisplayName(), d.UpdatedAt.Local().Format("2006-01-02 15:04"))
	if i == v.selected {
		return "> " + v.styles.Selected.Render(row)
	}
	return "  " + v.styles.Normal.Render(row)
}

// Drafts returns the loaded drafts.
func (v *View) Drafts() []domain.Draft {
	return v.items
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
