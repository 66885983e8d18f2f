package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/core/domain"
)

func newTestSuggestionService(llm *fakeLLM) *SuggestionService {
	return NewSuggestionService(NewGenerator(llm, domain.GenerationSettings{}), testPrompts())
}

func TestSuggestionService_FieldHints(t *testing.T) {
	tests := []struct {
		target domain.SuggestionTarget
		reply  string
		check  func(t *testing.T, d domain.DocumentState)
	}{
		{domain.SuggestDescription, `"Displays a card."`, func(t *testing.T, d domain.DocumentState) {
			assert.Equal(t, "Displays a card.", d.Identity.Description)
		}},
		{domain.SuggestUseCase, "  Dashboards.\n", func(t *testing.T, d domain.DocumentState) {
			assert.Equal(t, "Dashboards.", d.Identity.UseCase)
		}},
		{domain.SuggestHTMLElements, "'<article>, <header>'", func(t *testing.T, d domain.DocumentState) {
			assert.Equal(t, "<article>, <header>", d.Visuals.HTMLElements)
		}},
		{domain.SuggestStyling, "CSS Modules.", func(t *testing.T, d domain.DocumentState) {
			assert.Equal(t, "CSS Modules.", d.Visuals.Styling)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			llm := &fakeLLM{replies: []string{tt.reply}}
			svc := newTestSuggestionService(llm)
			doc := cardDoc()

			got, err := svc.Suggest(context.Background(), tt.target, doc)
			require.NoError(t, err)
			tt.check(t, got)

			opts := llm.lastOpts()
			assert.InDelta(t, domain.FieldHintTemperature, opts.Temperature, 1e-9)
			assert.Equal(t, 32, opts.TopK)
			assert.False(t, opts.JSON)
			assert.True(t, doc.Equal(cardDoc()), "input document must not change")
		})
	}
}

func TestSuggestionService_PromptInterpolation(t *testing.T) {
	llm := &fakeLLM{replies: []string{"x", "y"}}
	svc := newTestSuggestionService(llm)

	_, err := svc.Suggest(context.Background(), domain.SuggestDescription, domain.NewDocumentState())
	require.NoError(t, err)
	assert.Equal(t, `Describe "unnamed component".`, llm.lastPrompt())

	_, err = svc.Suggest(context.Background(), domain.SuggestUseCase, cardDoc())
	require.NoError(t, err)
	assert.Equal(t, `Use case for "Card" described as "shows a summary".`, llm.lastPrompt())
}

func TestSuggestionService_EmptyHint(t *testing.T) {
	svc := newTestSuggestionService(&fakeLLM{replies: []string{`""`}})

	_, err := svc.Suggest(context.Background(), domain.SuggestDescription, cardDoc())
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestSuggestionService_Props(t *testing.T) {
	reply := "```json\n" + `[
		{"id": "attacker", "name": "title", "type": "string", "description": "Heading", "required": true, "defaultValue": "", "impact": "Shown on top"},
		{"name": "count", "type": "number", "description": "Items", "required": false, "defaultValue": "0", "impact": "Badge"}
	]` + "\n```"
	llm := &fakeLLM{replies: []string{reply}}
	svc := newTestSuggestionService(llm)

	doc := cardDoc()
	doc.Props = []domain.PropDefinition{{ID: "existing", Name: "id", Type: "string"}}

	got, err := svc.Suggest(context.Background(), domain.SuggestProps, doc)
	require.NoError(t, err)

	require.Len(t, got.Props, 3)
	assert.Equal(t, "existing", got.Props[0].ID)
	assert.Equal(t, "title", got.Props[1].Name)
	assert.True(t, got.Props[1].Required)
	assert.NotEqual(t, "attacker", got.Props[1].ID)
	assert.Len(t, got.Props[2].ID, 36)

	opts := llm.lastOpts()
	assert.True(t, opts.JSON)
	assert.InDelta(t, domain.SectionHintTemperature, opts.Temperature, 1e-9)
	assert.Contains(t, llm.lastPrompt(), "matching this JSON schema")
}

func TestSuggestionService_StateMerge(t *testing.T) {
	reply := `{
		"variables": [{"name": "isOpen", "initialValue": "false", "hook": "", "purpose": "expanded", "transitions": "toggle"}],
		"effects": [{"description": "fetch", "dependencies": "id", "cleanup": "abort"}],
		"optimizations": "memo rows",
		"customHooks": ""
	}`
	svc := newTestSuggestionService(&fakeLLM{replies: []string{reply}})
	doc := cardDoc()
	doc.State.Optimizations = "useCallback handlers"
	doc.State.CustomHooks = "useToggle"

	got, err := svc.Suggest(context.Background(), domain.SuggestState, doc)
	require.NoError(t, err)

	require.Len(t, got.State.Variables, 1)
	assert.Equal(t, domain.DefaultStateHook, got.State.Variables[0].Hook)
	require.Len(t, got.State.Effects, 1)
	assert.Equal(t, "abort", got.State.Effects[0].Cleanup)
	assert.Equal(t, "useCallback handlers\nmemo rows", got.State.Optimizations)
	assert.Equal(t, "useToggle", got.State.CustomHooks)
}

func TestSuggestionService_InteractionsMerge(t *testing.T) {
	reply := `{
		"userInteractions": [{"description": "click header"}],
		"eventEmitters": [{"name": "onToggle", "arguments": "open", "trigger": "header click"}],
		"conditionalRendering": [{"description": "spinner", "condition": "loading"}]
	}`
	svc := newTestSuggestionService(&fakeLLM{replies: []string{reply}})

	got, err := svc.Suggest(context.Background(), domain.SuggestInteractions, cardDoc())
	require.NoError(t, err)

	assert.Len(t, got.Interactions.UserInteractions, 1)
	assert.Equal(t, "onToggle", got.Interactions.EventEmitters[0].Name)
	assert.Equal(t, "loading", got.Interactions.ConditionalRendering[0].Condition)
}

func TestSuggestionService_VisualsAndRobustnessMerge(t *testing.T) {
	llm := &fakeLLM{replies: []string{
		`{"htmlElements": "<footer>", "styling": "CSS Modules", "layout": "grid"}`,
		`{"accessibility": "aria labels", "errorHandling": "", "loadingStates": "skeleton", "edgeCases": "long titles", "testing": "RTL"}`,
	}}
	svc := newTestSuggestionService(llm)
	doc := cardDoc()
	doc.Visuals.HTMLElements = "<article>"
	doc.Robustness.Accessibility = "focus ring"

	got, err := svc.Suggest(context.Background(), domain.SuggestVisuals, doc)
	require.NoError(t, err)
	assert.Equal(t, "<article>, <footer>", got.Visuals.HTMLElements)
	assert.Equal(t, "CSS Modules", got.Visuals.Styling)
	assert.Equal(t, "grid", got.Visuals.Layout)

	got, err = svc.Suggest(context.Background(), domain.SuggestRobustness, got)
	require.NoError(t, err)
	assert.Equal(t, "focus ring\naria labels", got.Robustness.Accessibility)
	assert.Empty(t, got.Robustness.ErrorHandling)
	assert.Equal(t, "RTL", got.Robustness.Testing)
}

func TestSuggestionService_RejectsInvalidReplies(t *testing.T) {
	tests := []struct {
		name   string
		target domain.SuggestionTarget
		reply  string
	}{
		{"not json", domain.SuggestProps, "here are some props"},
		{"wrong shape", domain.SuggestProps, `{"name": "title"}`},
		{"missing required key", domain.SuggestVisuals, `{"htmlElements": "<div>"}`},
		{"wrong field type", domain.SuggestProps, `[{"name": "a", "type": "b", "description": "c", "required": "yes", "defaultValue": "", "impact": ""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestSuggestionService(&fakeLLM{replies: []string{tt.reply}})
			doc := cardDoc()

			got, err := svc.Suggest(context.Background(), tt.target, doc)

			assert.ErrorIs(t, err, domain.ErrGenerationFailed)
			assert.True(t, got.Equal(doc))
		})
	}
}

func TestSuggestionService_ProviderError(t *testing.T) {
	svc := newTestSuggestionService(&fakeLLM{err: errors.New("503")})

	_, err := svc.Suggest(context.Background(), domain.SuggestRobustness, cardDoc())
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestSuggestionService_Unavailable(t *testing.T) {
	svc := NewSuggestionService(NewGenerator(nil, domain.GenerationSettings{}), testPrompts())

	assert.False(t, svc.Available())
	_, err := svc.Suggest(context.Background(), domain.SuggestProps, cardDoc())
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	svc = newTestSuggestionService(&fakeLLM{})
	_, err = svc.Suggest(context.Background(), domain.SuggestionTarget("footer"), cardDoc())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuggestionSchema(t *testing.T) {
	for _, target := range domain.AllSuggestionTargets() {
		if target.IsFieldHint() {
			assert.Nil(t, SuggestionSchema(target), target)
		} else {
			assert.NotNil(t, SuggestionSchema(target), target)
		}
	}
}
