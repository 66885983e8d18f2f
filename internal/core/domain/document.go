package domain

import (
	"fmt"
	"slices"
)

// DocumentState is the complete description of a component.
// Values are replaced wholesale on every edit; nothing mutates a
// DocumentState after it has been handed out.
type DocumentState struct {
	Identity     Identity            `json:"identity" yaml:"identity"`
	Props        []PropDefinition    `json:"props" yaml:"props"`
	State        StateSection        `json:"state" yaml:"state"`
	Interactions InteractionsSection `json:"interactions" yaml:"interactions"`
	Visuals      VisualsSection      `json:"visuals" yaml:"visuals"`
	Robustness   RobustnessSection   `json:"robustness" yaml:"robustness"`
}

// NewDocumentState returns a document with every field empty.
func NewDocumentState() DocumentState {
	return DocumentState{}
}

// DefaultDocumentState returns the document a new editing session starts with.
func DefaultDocumentState() DocumentState {
	return DocumentState{Visuals: VisualsSection{Styling: DefaultStyling}}
}

// Equal reports whether d and o hold the same values.
// Nil and empty sequences compare equal.
func (d DocumentState) Equal(o DocumentState) bool {
	return d.Identity == o.Identity &&
		d.Visuals == o.Visuals &&
		d.Robustness == o.Robustness &&
		slices.Equal(d.Props, o.Props) &&
		d.State.Equal(o.State) &&
		d.Interactions.Equal(o.Interactions)
}

// Clone returns a deep copy of d.
func (d DocumentState) Clone() DocumentState {
	c := d
	c.Props = slices.Clone(d.Props)
	c.State.Variables = slices.Clone(d.State.Variables)
	c.State.Effects = slices.Clone(d.State.Effects)
	c.Interactions.UserInteractions = slices.Clone(d.Interactions.UserInteractions)
	c.Interactions.EventEmitters = slices.Clone(d.Interactions.EventEmitters)
	c.Interactions.ConditionalRendering = slices.Clone(d.Interactions.ConditionalRendering)
	return c
}

// ListKind identifies one of the list-shaped sequences of a document.
type ListKind string

// Available lists.
const (
	ListProps        ListKind = "props"
	ListVariables    ListKind = "variables"
	ListEffects      ListKind = "effects"
	ListInteractions ListKind = "interactions"
	ListEmitters     ListKind = "emitters"
	ListConditionals ListKind = "conditionals"
)

// AllListKinds returns the lists in rendering order.
func AllListKinds() []ListKind {
	return []ListKind{
		ListProps, ListVariables, ListEffects,
		ListInteractions, ListEmitters, ListConditionals,
	}
}

// ParseListKind validates s as a list name.
func ParseListKind(s string) (ListKind, error) {
	k := ListKind(s)
	if !slices.Contains(AllListKinds(), k) {
		return "", fmt.Errorf("%w: unknown list %q", ErrInvalidInput, s)
	}
	return k, nil
}

// Description returns a human-readable name for the list.
func (k ListKind) Description() string {
	switch k {
	case ListProps:
		return "Props"
	case ListVariables:
		return "State variables"
	case ListEffects:
		return "Side effects"
	case ListInteractions:
		return "User interactions"
	case ListEmitters:
		return "Event emitters"
	case ListConditionals:
		return "Conditional rendering"
	default:
		return "Unknown"
	}
}

// SectionKind identifies a singleton group of free-text fields.
type SectionKind string

// Available singleton sections.
const (
	SectionIdentity   SectionKind = "identity"
	SectionState      SectionKind = "state"
	SectionVisuals    SectionKind = "visuals"
	SectionRobustness SectionKind = "robustness"
)

// AllSectionKinds returns the singleton sections in display order.
func AllSectionKinds() []SectionKind {
	return []SectionKind{SectionIdentity, SectionState, SectionVisuals, SectionRobustness}
}

// ParseSectionKind validates s as a section name.
func ParseSectionKind(s string) (SectionKind, error) {
	k := SectionKind(s)
	if !slices.Contains(AllSectionKinds(), k) {
		return "", fmt.Errorf("%w: unknown section %q", ErrInvalidInput, s)
	}
	return k, nil
}

// Description returns a human-readable name for the section.
func (k SectionKind) Description() string {
	switch k {
	case SectionIdentity:
		return "Identity"
	case SectionState:
		return "State notes"
	case SectionVisuals:
		return "Visuals & structure"
	case SectionRobustness:
		return "Robustness checklist"
	default:
		return "Unknown"
	}
}

// Section returns the fields of a singleton section.
func (d DocumentState) Section(kind SectionKind) (FieldSet, error) {
	switch kind {
	case SectionIdentity:
		return d.Identity, nil
	case SectionState:
		return d.State, nil
	case SectionVisuals:
		return d.Visuals, nil
	case SectionRobustness:
		return d.Robustness, nil
	}
	return nil, fmt.Errorf("%w: unknown section %q", ErrInvalidInput, kind)
}

// ListItem is a read-only view of one record for display.
type ListItem interface {
	Record
	FieldSet
	Label() string
}

// Records returns the records of one list in order.
func (d DocumentState) Records(kind ListKind) ([]ListItem, error) {
	switch kind {
	case ListProps:
		return items(d.Props), nil
	case ListVariables:
		return items(d.State.Variables), nil
	case ListEffects:
		return items(d.State.Effects), nil
	case ListInteractions:
		return items(d.Interactions.UserInteractions), nil
	case ListEmitters:
		return items(d.Interactions.EventEmitters), nil
	case ListConditionals:
		return items(d.Interactions.ConditionalRendering), nil
	}
	return nil, fmt.Errorf("%w: unknown list %q", ErrInvalidInput, kind)
}

func items[T ListItem](seq []T) []ListItem {
	out := make([]ListItem, len(seq))
	for i := range seq {
		out[i] = seq[i]
	}
	return out
}

// FieldsOf returns the field descriptors for records of the given list.
func FieldsOf(kind ListKind) []Field {
	switch kind {
	case ListProps:
		return propFields
	case ListVariables:
		return stateVariableFields
	case ListEffects:
		return sideEffectFields
	case ListInteractions:
		return userInteractionFields
	case ListEmitters:
		return eventEmitterFields
	case ListConditionals:
		return conditionalRenderFields
	}
	return nil
}
