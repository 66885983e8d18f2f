package services

import "github.com/custodia-labs/archie/internal/core/domain"

// JSON schemas for structured section suggestions. Replies are checked
// against these before anything is merged into a document.

func stringProp() map[string]any { return map[string]any{"type": "string"} }

func objectOf(required []string, props map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func arrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

var propsSchema = arrayOf(objectOf(
	[]string{"name", "type", "description", "required", "defaultValue", "impact"},
	map[string]any{
		"name":         stringProp(),
		"type":         stringProp(),
		"description":  stringProp(),
		"required":     map[string]any{"type": "boolean"},
		"defaultValue": stringProp(),
		"impact":       stringProp(),
	},
))

var stateSchema = objectOf(
	[]string{"variables", "effects", "optimizations", "customHooks"},
	map[string]any{
		"variables": arrayOf(objectOf(
			[]string{"name", "initialValue", "hook", "purpose", "transitions"},
			map[string]any{
				"name":         stringProp(),
				"initialValue": stringProp(),
				"hook":         stringProp(),
				"purpose":      stringProp(),
				"transitions":  stringProp(),
			},
		)),
		"effects": arrayOf(objectOf(
			[]string{"description", "dependencies", "cleanup"},
			map[string]any{
				"description":  stringProp(),
				"dependencies": stringProp(),
				"cleanup":      stringProp(),
			},
		)),
		"optimizations": stringProp(),
		"customHooks":   stringProp(),
	},
)

var interactionsSchema = objectOf(
	[]string{"userInteractions", "eventEmitters", "conditionalRendering"},
	map[string]any{
		"userInteractions": arrayOf(objectOf(
			[]string{"description"},
			map[string]any{"description": stringProp()},
		)),
		"eventEmitters": arrayOf(objectOf(
			[]string{"name", "arguments", "trigger"},
			map[string]any{"name": stringProp(), "arguments": stringProp(), "trigger": stringProp()},
		)),
		"conditionalRendering": arrayOf(objectOf(
			[]string{"description", "condition"},
			map[string]any{"description": stringProp(), "condition": stringProp()},
		)),
	},
)

var visualsSchema = objectOf(
	[]string{"htmlElements", "styling", "layout"},
	map[string]any{"htmlElements": stringProp(), "styling": stringProp(), "layout": stringProp()},
)

var robustnessSchema = objectOf(
	[]string{"accessibility", "errorHandling", "loadingStates", "edgeCases", "testing"},
	map[string]any{
		"accessibility": stringProp(),
		"errorHandling": stringProp(),
		"loadingStates": stringProp(),
		"edgeCases":     stringProp(),
		"testing":       stringProp(),
	},
)

// SuggestionSchema returns the reply schema for a section target, or nil
// for single-field hints.
func SuggestionSchema(target domain.SuggestionTarget) map[string]any {
	switch target {
	case domain.SuggestProps:
		return propsSchema
	case domain.SuggestState:
		return stateSchema
	case domain.SuggestInteractions:
		return interactionsSchema
	case domain.SuggestVisuals:
		return visualsSchema
	case domain.SuggestRobustness:
		return robustnessSchema
	default:
		return nil
	}
}
