package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/build"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/drafts"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/form"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/prompt"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/records"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/sections"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/promptdoc"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	menuView     *menu.View
	sectionsView *sections.View
	formView     *form.View
	recordsView  *records.View
	promptView   *prompt.View
	buildView    *build.View
	draftsView   *drafts.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// draft is the draft the editor document was opened from or saved to.
	draft *domain.Draft

	// suggestVersion is the editor version a pending suggestion was
	// computed from. A result for an older version is dropped.
	suggestVersion uint64
	suggesting     bool

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	ctx := context.Background()
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          ctx,
		styles:       s,
		keymap:       km,
		status:       status.NewBar(s, km),
		menuView:     menu.NewView(s),
		sectionsView: sections.NewView(s, ports.Editor),
		formView:     form.NewView(s, ports.Editor),
		recordsView:  records.NewView(s, ports.Editor),
		promptView:   prompt.NewView(s, ports.Editor),
		buildView:    build.NewView(ctx, s, ports.Editor, ports.Builds),
		draftsView:   drafts.NewView(ctx, s, ports.Drafts, ports.Editor),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context service calls run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.buildView.SetContext(ctx)
	a.draftsView.SetContext(ctx)
	return a
}

// WithDraft starts the session on an existing draft.
func (a *App) WithDraft(d *domain.Draft) *App {
	a.ports.Editor.Load(d.State)
	a.setDraft(d)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("archie"),
	)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewPrompt:
			a.promptView.Open()
		case messages.ViewRecords:
			a.recordsView.Refresh()
		case messages.ViewDrafts:
			return a, a.draftsView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewSections, messages.ViewForm,
			messages.ViewBuild, messages.ViewHelp:
		}
		return a, nil

	case messages.SectionSelected:
		a.currentView = messages.ViewForm
		return a, a.formView.Open(form.Target{Section: msg.Section})

	case messages.ListSelected:
		a.currentView = messages.ViewRecords
		a.recordsView.Open(msg.List)
		return a, nil

	case messages.RecordSelected:
		a.currentView = messages.ViewForm
		return a, a.formView.Open(form.Target{List: msg.List, ID: msg.ID})

	case messages.DocumentEdited:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.status.SetState(status.StateReady, "Updated")
		if msg.Back == messages.ViewRecords {
			a.recordsView.Refresh()
		}
		a.currentView = msg.Back
		return a, nil

	case messages.SuggestionRequested:
		return a, a.suggest(msg.Target)

	case messages.SuggestionCompleted:
		a.completeSuggestion(msg)
		return a, nil

	case messages.BuildCompleted:
		a.buildView, cmd = a.buildView.Update(msg)
		if !a.buildView.Running() {
			a.status.Clear()
		}
		return a, cmd

	case messages.DraftOpened:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.ports.Editor.Load(msg.Draft.State)
		a.setDraft(msg.Draft)
		a.status.SetState(status.StateReady, "Opened "+msg.Draft.DisplayName())
		a.currentView = messages.ViewSections
		return a, nil

	case messages.DraftSaved:
		if msg.Err != nil {
			a.fail(msg.Err)
		} else {
			a.setDraft(msg.Draft)
			a.status.SetState(status.StateSaved, "Saved "+msg.Draft.DisplayName())
		}
		a.draftsView, cmd = a.draftsView.Update(msg)
		return a, cmd

	case messages.DraftDeleted:
		if msg.Err != nil {
			a.fail(msg.Err)
		} else if a.draft != nil && a.draft.ID == msg.ID {
			a.setDraft(nil)
		}
		a.draftsView, cmd = a.draftsView.Update(msg)
		return a, cmd

	case messages.DraftsLoaded:
		a.draftsView, cmd = a.draftsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSections:
		a.sectionsView, cmd = a.sectionsView.Update(msg)
	case messages.ViewForm:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewRecords:
		a.recordsView, cmd = a.recordsView.Update(msg)
	case messages.ViewPrompt:
		a.promptView, cmd = a.promptView.Update(msg)
	case messages.ViewBuild:
		a.buildView, cmd = a.buildView.Update(msg)
		if a.buildView.Running() {
			a.status.SetState(status.StateWorking, "Building...")
		}
	case messages.ViewDrafts:
		a.draftsView, cmd = a.draftsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// suggest runs a suggestion against a snapshot of the document.
func (a *App) suggest(target domain.SuggestionTarget) tea.Cmd {
	svc := a.ports.Suggestions
	if svc == nil || !svc.Available() {
		a.fail(fmt.Errorf("%w: no LLM provider configured (run 'archie settings llm')", domain.ErrNotConfigured))
		return nil
	}

	a.suggesting = true
	a.suggestVersion = a.ports.Editor.Version()
	a.status.SetState(status.StateWorking, fmt.Sprintf("Suggesting %s...", target))

	ctx, doc := a.ctx, a.ports.Editor.Document()
	return func() tea.Msg {
		out, err := svc.Suggest(ctx, target, doc)
		return messages.SuggestionCompleted{Target: target, Document: out, Err: err}
	}
}

// completeSuggestion loads the suggested document unless the editor
// changed while the request was running.
func (a *App) completeSuggestion(msg messages.SuggestionCompleted) {
	a.suggesting = false
	if msg.Err != nil {
		a.fail(msg.Err)
		return
	}
	if a.ports.Editor.Version() != a.suggestVersion {
		a.status.SetState(status.StateReady, "Suggestion discarded: the document changed")
		return
	}

	a.ports.Editor.Load(msg.Document)
	switch a.currentView {
	case messages.ViewForm:
		a.formView.Reload()
	case messages.ViewRecords:
		a.recordsView.Refresh()
	default:
	}
	a.status.SetState(status.StateSaved, fmt.Sprintf("Applied %s suggestion", msg.Target))
}

func (a *App) setDraft(d *domain.Draft) {
	a.draft = d
	id, name := "", ""
	if d != nil {
		id, name = d.ID, d.DisplayName()
	}
	a.draftsView.SetCurrent(id)
	a.buildView.SetDraft(id)
	a.status.SetDraft(name)
}

func (a *App) fail(err error) {
	a.err = err
	a.status.SetState(status.StateError, err.Error())
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	a.status.SetOutline(promptdoc.Outline(a.ports.Editor.Document()))
	switch a.currentView {
	case messages.ViewForm:
		a.status.SetBindings(a.keymap.FormHelp())
	case messages.ViewRecords:
		a.status.SetBindings(a.keymap.ListHelp())
	default:
		a.status.SetBindings(nil)
	}

	return a.body() + "\n\n" + a.status.View()
}

func (a *App) body() string {
	switch a.currentView {
	case messages.ViewSections:
		return a.sectionsView.View()
	case messages.ViewForm:
		return a.formView.View()
	case messages.ViewRecords:
		return a.recordsView.View()
	case messages.ViewPrompt:
		return a.promptView.View()
	case messages.ViewBuild:
		return a.buildView.View()
	case messages.ViewDrafts:
		return a.draftsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
		return a.menuView.View()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Sections:
  j/k, ↑/↓    Navigate
  enter       Edit section or list

Forms:
  tab         Next field
  shift+tab   Previous field
  ctrl+s      Apply changes
  ctrl+g      Suggest the focused field or section

Lists:
  a           Add entry
  enter       Edit entry
  d           Delete entry
  ctrl+g      Suggest entries

Build:
  b           Build the component

Drafts:
  enter       Open draft
  w           Save to the open draft
  n           Save as a new draft
  d           Delete draft

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Draft returns the open draft, or nil when the document is unsaved.
func (a *App) Draft() *domain.Draft {
	return a.draft
}

// Suggesting reports whether a suggestion is in flight.
func (a *App) Suggesting() bool {
	return a.suggesting
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// The status bar takes the last line.
	body := max(height-2, 1)
	a.status.SetWidth(width)
	a.menuView.SetDimensions(width, body)
	a.sectionsView.SetDimensions(width, body)
	a.formView.SetDimensions(width, body)
	a.recordsView.SetDimensions(width, body)
	a.promptView.SetDimensions(width, body)
	a.buildView.SetDimensions(width, body)
}
