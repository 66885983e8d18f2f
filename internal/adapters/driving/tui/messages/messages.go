// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/archie/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSections lists the editable sections and lists of the document.
	ViewSections
	// ViewForm edits the fields of a section or a single record.
	ViewForm
	// ViewRecords lists the records of one list.
	ViewRecords
	// ViewPrompt shows the assembled prompt.
	ViewPrompt
	// ViewBuild runs builds and shows the generated code.
	ViewBuild
	// ViewDrafts lists saved drafts.
	ViewDrafts
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSections:
		return "sections"
	case ViewForm:
		return "form"
	case ViewRecords:
		return "records"
	case ViewPrompt:
		return "prompt"
	case ViewBuild:
		return "build"
	case ViewDrafts:
		return "drafts"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SectionSelected asks for the form of a singleton section.
type SectionSelected struct {
	Section domain.SectionKind
}

// ListSelected asks for the record list of one list.
type ListSelected struct {
	List domain.ListKind
}

// RecordSelected asks for the form of one record. An empty ID adds a new record.
type RecordSelected struct {
	List domain.ListKind
	ID   string
}

// DocumentEdited signals that an edit was applied to the editor session.
// Back names the view to return to on success.
type DocumentEdited struct {
	Back ViewType
	Err  error
}

// SuggestionRequested asks the app to run a suggestion against the current document.
type SuggestionRequested struct {
	Target domain.SuggestionTarget
}

// SuggestionCompleted carries the document produced by a suggestion.
type SuggestionCompleted struct {
	Target   domain.SuggestionTarget
	Document domain.DocumentState
	Err      error
}

// BuildCompleted carries the result of a build. Seq identifies the
// request that started it so stale results can be dropped.
type BuildCompleted struct {
	Seq   int
	Build *domain.Build
	Err   error
}

// DraftsLoaded carries the list of saved drafts.
type DraftsLoaded struct {
	Drafts []domain.Draft
	Err    error
}

// DraftOpened signals a draft was loaded into the editor.
type DraftOpened struct {
	Draft *domain.Draft
	Err   error
}

// DraftSaved signals the editor document was written to a draft.
type DraftSaved struct {
	Draft *domain.Draft
	Err   error
}

// DraftDeleted signals a draft was deleted.
type DraftDeleted struct {
	ID  string
	Err error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
