package domain

import (
	"fmt"
	"slices"
)

// SuggestionTarget names what a suggestion request fills in.
type SuggestionTarget string

// Single-field hints return plain text.
const (
	SuggestDescription  SuggestionTarget = "description"
	SuggestUseCase      SuggestionTarget = "useCase"
	SuggestHTMLElements SuggestionTarget = "htmlElements"
	SuggestStyling      SuggestionTarget = "styling"
)

// Section suggestions return structured JSON that is merged into the document.
const (
	SuggestProps        SuggestionTarget = "props"
	SuggestState        SuggestionTarget = "state"
	SuggestInteractions SuggestionTarget = "interactions"
	SuggestVisuals      SuggestionTarget = "visuals"
	SuggestRobustness   SuggestionTarget = "robustness"
)

// AllSuggestionTargets returns every target in form order.
func AllSuggestionTargets() []SuggestionTarget {
	return []SuggestionTarget{
		SuggestDescription, SuggestUseCase,
		SuggestProps, SuggestState, SuggestInteractions,
		SuggestHTMLElements, SuggestStyling, SuggestVisuals,
		SuggestRobustness,
	}
}

// ParseSuggestionTarget validates s as a suggestion target.
func ParseSuggestionTarget(s string) (SuggestionTarget, error) {
	t := SuggestionTarget(s)
	if !slices.Contains(AllSuggestionTargets(), t) {
		return "", fmt.Errorf("%w: unknown suggestion target %q", ErrInvalidInput, s)
	}
	return t, nil
}

// IsFieldHint reports whether the target produces a single text value.
func (t SuggestionTarget) IsFieldHint() bool {
	switch t {
	case SuggestDescription, SuggestUseCase, SuggestHTMLElements, SuggestStyling:
		return true
	default:
		return false
	}
}
