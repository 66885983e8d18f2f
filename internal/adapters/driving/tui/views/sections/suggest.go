package sections

import "github.com/custodia-labs/archie/internal/core/domain"

// SuggestionFor picks the suggestion target for an entry. fieldKey is the
// focused form field; single-field hints win over whole-section suggestions.
// The component name has no suggestion.
func SuggestionFor(e Entry, fieldKey string) (domain.SuggestionTarget, bool) {
	switch e.List {
	case domain.ListProps:
		return domain.SuggestProps, true
	case domain.ListVariables, domain.ListEffects:
		return domain.SuggestState, true
	case domain.ListInteractions, domain.ListEmitters, domain.ListConditionals:
		return domain.SuggestInteractions, true
	}

	switch e.Section {
	case domain.SectionIdentity:
		switch fieldKey {
		case "description":
			return domain.SuggestDescription, true
		case "useCase":
			return domain.SuggestUseCase, true
		}
	case domain.SectionState:
		return domain.SuggestState, true
	case domain.SectionVisuals:
		switch fieldKey {
		case "htmlElements":
			return domain.SuggestHTMLElements, true
		case "styling":
			return domain.SuggestStyling, true
		}
		return domain.SuggestVisuals, true
	case domain.SectionRobustness:
		return domain.SuggestRobustness, true
	}
	return "", false
}
