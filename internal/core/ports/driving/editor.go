package driving

import "github.com/custodia-labs/archie/internal/core/domain"

// EditorService holds the document being edited in this session.
//
// Every edit replaces the document wholesale; Document returns a snapshot
// that later edits never change. Records are targeted by id.
type EditorService interface {
	// Document returns the current snapshot.
	Document() domain.DocumentState

	// Version increases by one on every successful edit.
	Version() uint64

	// Prompt returns the assembled Markdown for the current snapshot.
	Prompt() string

	// Load replaces the whole document.
	Load(doc domain.DocumentState)

	// Reset starts over from the default document.
	Reset()

	// SetSectionFields sets fields of a singleton section.
	SetSectionFields(section domain.SectionKind, fields map[string]string) error

	// AddRecord appends a record built from fields and returns its new id.
	AddRecord(list domain.ListKind, fields map[string]string) (string, error)

	// UpdateRecord changes fields of the record with the given id.
	UpdateRecord(list domain.ListKind, id string, fields map[string]string) error

	// RemoveRecord deletes the record with the given id.
	RemoveRecord(list domain.ListKind, id string) error
}
