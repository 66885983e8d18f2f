// Package build runs component builds and shows their output.
package build

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

const reserved = 8

// View starts builds and shows the latest result.
type View struct {
	ctx    context.Context
	styles *styles.Styles
	editor driving.EditorService
	builds driving.BuildService

	draftID  string
	seq      int
	running  bool
	build    *domain.Build
	err      error
	viewport viewport.Model
}

// NewView creates a new build view. builds may be nil.
func NewView(ctx context.Context, s *styles.Styles, editor driving.EditorService, builds driving.BuildService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:      ctx,
		styles:   s,
		editor:   editor,
		builds:   builds,
		viewport: viewport.New(80, 24-reserved),
	}
}

// SetContext sets the context service calls run under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetDraft records which draft builds belong to.
func (v *View) SetDraft(id string) {
	v.draftID = id
}

// Start runs a build of the current document. A newer start makes any
// result still in flight stale.
func (v *View) Start() tea.Cmd {
	if v.builds == nil || !v.builds.Available() {
		v.err = fmt.Errorf("%w: no LLM provider configured (run 'archie settings llm')", domain.ErrNotConfigured)
		return nil
	}

	v.seq++
	v.running = true
	v.err = nil

	seq, ctx, builds := v.seq, v.ctx, v.builds
	draftID, doc := v.draftID, v.editor.Document()
	return func() tea.Msg {
		build, err := builds.Build(ctx, draftID, doc)
		return messages.BuildCompleted{Seq: seq, Build: build, Err: err}
	}
}

// Update handles messages for the build view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.BuildCompleted:
		v.complete(msg)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "b", "enter":
			return v, v.Start()
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// complete shows a result unless a newer build has started since.
func (v *View) complete(msg messages.BuildCompleted) {
	if msg.Seq != v.seq || errors.Is(msg.Err, domain.ErrSuperseded) {
		return
	}

	v.running = false
	v.build = msg.Build
	v.err = nil
	if msg.Build == nil {
		v.err = msg.Err
		v.viewport.SetContent("")
		return
	}
	v.viewport.SetContent(msg.Build.Code)
	v.viewport.GotoTop()
}

// View renders the build view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Build"))
	b.WriteString("\n\n")

	switch {
	case v.running:
		b.WriteString(v.styles.Warning.Render("Generating component..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case v.build == nil:
		b.WriteString(v.styles.Muted.Render("Press [b] to build the component from the current document."))
		b.WriteString("\n")
	default:
		b.WriteString(v.summary())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Code.Render(v.viewport.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[b] Build  [j/k] Scroll  [Esc] Back"))
	return b.String()
}

// summary describes the outcome with the validator diagnostic.
func (v *View) summary() string {
	build := v.build
	header := fmt.Sprintf("Build %d  %s", build.Seq, build.Model)

	var status string
	switch {
	case build.Err != "":
		status = v.styles.Error.Render("Generation failed: " + build.Err)
	case !build.Validation.Valid:
		status = v.styles.Error.Render(fmt.Sprintf("Invalid (%s)", build.Validation.Validator)) +
			"\n  " + v.styles.Warning.Render(build.Validation.Diagnostic)
	default:
		status = v.styles.Success.Render(fmt.Sprintf("Valid (%s)", build.Validation.Validator))
	}
	return v.styles.Muted.Render(header) + "\n" + status
}

// Running reports whether a build is in flight.
func (v *View) Running() bool {
	return v.running
}

// Build returns the last shown build.
func (v *View) Build() *domain.Build {
	return v.build
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.viewport.Width = max(width-2, 1)
	v.viewport.Height = max(height-reserved, 1)
}
