// Package tui provides an interactive terminal editor for archie documents.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Editor holds the document being edited. Required.
	Editor driving.EditorService

	// Drafts persists documents. Required.
	Drafts driving.DraftService

	// Builds generates component code. Optional; the build view reports
	// that no LLM is configured when nil.
	Builds driving.BuildService

	// Suggestions fills in fields and sections. Optional.
	Suggestions driving.SuggestionService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Editor == nil {
		return ErrMissingEditorService
	}
	if p.Drafts == nil {
		return ErrMissingDraftService
	}
	return nil
}
