package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/editing"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
	"github.com/custodia-labs/archie/internal/promptdoc"
)

// Ensure EditorService implements the interface.
var _ driving.EditorService = (*EditorService)(nil)

// EditorService holds the document being edited.
// Every edit builds a new DocumentState and swaps it in under the lock.
type EditorService struct {
	mu        sync.RWMutex
	doc       domain.DocumentState
	version   uint64
	assembler *promptdoc.Assembler
}

// NewEditorService creates an editor holding the default document.
func NewEditorService() *EditorService {
	return &EditorService{
		doc:       domain.DefaultDocumentState(),
		assembler: promptdoc.NewAssembler(),
	}
}

// Document returns a snapshot of the current document.
func (s *EditorService) Document() domain.DocumentState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Version returns the edit counter.
func (s *EditorService) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Prompt returns the assembled Markdown for the current document.
func (s *EditorService) Prompt() string {
	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()
	return s.assembler.Assemble(doc)
}

// Load replaces the whole document.
func (s *EditorService) Load(doc domain.DocumentState) {
	s.swap(doc.Clone())
}

// Reset starts over from the default document.
func (s *EditorService) Reset() {
	s.swap(domain.DefaultDocumentState())
}

// SetSectionFields sets fields of a singleton section.
func (s *EditorService) SetSectionFields(section domain.SectionKind, fields map[string]string) error {
	return s.edit(func(doc domain.DocumentState) (domain.DocumentState, error) {
		return ApplySectionFields(doc, section, fields)
	})
}

// AddRecord appends a record built from fields and returns its id.
func (s *EditorService) AddRecord(list domain.ListKind, fields map[string]string) (string, error) {
	var id string
	err := s.edit(func(doc domain.DocumentState) (domain.DocumentState, error) {
		var err error
		doc, id, err = editList(doc, list, listEdit{op: opAdd, fields: fields})
		return doc, err
	})
	return id, err
}

// UpdateRecord changes fields of the record with the given id.
func (s *EditorService) UpdateRecord(list domain.ListKind, id string, fields map[string]string) error {
	return s.edit(func(doc domain.DocumentState) (domain.DocumentState, error) {
		doc, _, err := editList(doc, list, listEdit{op: opUpdate, id: id, fields: fields})
		return doc, err
	})
}

// RemoveRecord deletes the record with the given id.
func (s *EditorService) RemoveRecord(list domain.ListKind, id string) error {
	return s.edit(func(doc domain.DocumentState) (domain.DocumentState, error) {
		doc, _, err := editList(doc, list, listEdit{op: opRemove, id: id})
		return doc, err
	})
}

func (s *EditorService) swap(doc domain.DocumentState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.version++
}

// edit applies fn to the current document. The document is left untouched
// when fn fails.
func (s *EditorService) edit(fn func(domain.DocumentState) (domain.DocumentState, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.doc)
	if err != nil {
		return err
	}
	s.doc = next
	s.version++
	return nil
}

// ApplyListEdit runs one add, update or remove against doc and returns the
// new document. It is shared by the editor and by code that edits stored
// drafts without a session.
func ApplyListEdit(doc domain.DocumentState, list domain.ListKind, op, id string, fields map[string]string) (domain.DocumentState, string, error) {
	return editList(doc, list, listEdit{op: listOp(op), id: id, fields: fields})
}

// ApplySectionFields sets fields of a singleton section on doc.
func ApplySectionFields(doc domain.DocumentState, section domain.SectionKind, fields map[string]string) (domain.DocumentState, error) {
	var err error
	switch section {
	case domain.SectionIdentity:
		doc.Identity, err = applyFields(doc.Identity, fields)
	case domain.SectionState:
		doc.State, err = applyFields(doc.State, fields)
	case domain.SectionVisuals:
		doc.Visuals, err = applyFields(doc.Visuals, fields)
	case domain.SectionRobustness:
		doc.Robustness, err = applyFields(doc.Robustness, fields)
	default:
		err = fmt.Errorf("%w: unknown section %q", domain.ErrInvalidInput, section)
	}
	return doc, err
}

type listOp string

// List operations accepted by ApplyListEdit.
const (
	opAdd    listOp = "add"
	opUpdate listOp = "update"
	opRemove listOp = "remove"
)

type listEdit struct {
	op     listOp
	id     string
	fields map[string]string
}

type fieldSetter[T any] interface {
	WithField(key, value string) (T, error)
}

type editable[T any] interface {
	domain.Record
	fieldSetter[T]
}

// applyFields sets fields in key order so errors are reproducible.
func applyFields[T fieldSetter[T]](rec T, fields map[string]string) (T, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		next, err := rec.WithField(k, fields[k])
		if err != nil {
			return rec, err
		}
		rec = next
	}
	return rec, nil
}

func editList(doc domain.DocumentState, list domain.ListKind, ed listEdit) (domain.DocumentState, string, error) {
	var id string
	var err error
	switch list {
	case domain.ListProps:
		doc.Props, id, err = editSeq(doc.Props, ed, domain.PropDefinition{}, func(r domain.PropDefinition, id string) domain.PropDefinition {
			r.ID = id
			return r
		})
	case domain.ListVariables:
		doc.State.Variables, id, err = editSeq(doc.State.Variables, ed, domain.StateVariable{Hook: domain.DefaultStateHook},
			func(r domain.StateVariable, id string) domain.StateVariable {
				r.ID = id
				return r
			})
	case domain.ListEffects:
		doc.State.Effects, id, err = editSeq(doc.State.Effects, ed, domain.SideEffect{}, func(r domain.SideEffect, id string) domain.SideEffect {
			r.ID = id
			return r
		})
	case domain.ListInteractions:
		doc.Interactions.UserInteractions, id, err = editSeq(doc.Interactions.UserInteractions, ed, domain.UserInteraction{},
			func(r domain.UserInteraction, id string) domain.UserInteraction {
				r.ID = id
				return r
			})
	case domain.ListEmitters:
		doc.Interactions.EventEmitters, id, err = editSeq(doc.Interactions.EventEmitters, ed, domain.EventEmitter{},
			func(r domain.EventEmitter, id string) domain.EventEmitter {
				r.ID = id
				return r
			})
	case domain.ListConditionals:
		doc.Interactions.ConditionalRendering, id, err = editSeq(doc.Interactions.ConditionalRendering, ed, domain.ConditionalRender{},
			func(r domain.ConditionalRender, id string) domain.ConditionalRender {
				r.ID = id
				return r
			})
	default:
		err = fmt.Errorf("%w: unknown list %q", domain.ErrInvalidInput, list)
	}
	return doc, id, err
}

func editSeq[T editable[T]](seq []T, ed listEdit, blank T, withID func(T, string) T) ([]T, string, error) {
	switch ed.op {
	case opAdd:
		rec, err := applyFields(blank, ed.fields)
		if err != nil {
			return seq, "", err
		}
		out := editing.Add(seq, func(id string) T { return withID(rec, id) })
		return out, out[len(out)-1].RecordID(), nil

	case opUpdate, opRemove:
		idx := editing.IndexOf(seq, ed.id)
		if idx < 0 {
			return seq, "", fmt.Errorf("%w: no record with id %q", domain.ErrNotFound, ed.id)
		}
		if ed.op == opRemove {
			return editing.Remove(seq, idx), ed.id, nil
		}
		rec, err := applyFields(seq[idx], ed.fields)
		if err != nil {
			return seq, "", err
		}
		return editing.Update(seq, idx, rec), ed.id, nil
	}
	return seq, "", fmt.Errorf("%w: unknown list operation %q", domain.ErrInvalidInput, ed.op)
}
