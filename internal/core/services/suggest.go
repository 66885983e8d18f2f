package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/editing"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
	"github.com/custodia-labs/archie/internal/logger"
)

// Ensure SuggestionService implements the interface.
var _ driving.SuggestionService = (*SuggestionService)(nil)

var suggestionPrompts = map[domain.SuggestionTarget]string{
	domain.SuggestDescription:  driven.PromptSuggestDescription,
	domain.SuggestUseCase:      driven.PromptSuggestUseCase,
	domain.SuggestHTMLElements: driven.PromptSuggestHTMLElements,
	domain.SuggestStyling:      driven.PromptSuggestStyling,
	domain.SuggestProps:        driven.PromptSuggestProps,
	domain.SuggestState:        driven.PromptSuggestState,
	domain.SuggestInteractions: driven.PromptSuggestInteractions,
	domain.SuggestVisuals:      driven.PromptSuggestVisuals,
	domain.SuggestRobustness:   driven.PromptSuggestRobustness,
}

// SuggestionService asks the LLM to fill in parts of a document.
type SuggestionService struct {
	gen     *Generator
	prompts driven.PromptStore
}

// NewSuggestionService creates a new suggestion service.
func NewSuggestionService(gen *Generator, prompts driven.PromptStore) *SuggestionService {
	return &SuggestionService{gen: gen, prompts: prompts}
}

// Available reports whether an LLM is configured.
func (s *SuggestionService) Available() bool {
	return s.gen.available()
}

// Suggest returns doc with the suggestion for target merged in.
func (s *SuggestionService) Suggest(ctx context.Context, target domain.SuggestionTarget, doc domain.DocumentState) (domain.DocumentState, error) {
	if !s.Available() {
		return doc, fmt.Errorf("%w: no LLM provider configured (run 'archie settings llm')", domain.ErrNotConfigured)
	}
	name, ok := suggestionPrompts[target]
	if !ok {
		return doc, fmt.Errorf("%w: unknown suggestion target %q", domain.ErrInvalidInput, target)
	}

	prompt, err := renderPrompt(s.prompts, name, doc.Identity)
	if err != nil {
		return doc, err
	}
	logger.Debug("suggest %s via %s", target, s.gen.modelName())

	if target.IsFieldHint() {
		return s.fieldHint(ctx, target, prompt, doc.Clone())
	}
	return s.section(ctx, target, prompt, doc.Clone())
}

func (s *SuggestionService) fieldHint(ctx context.Context, target domain.SuggestionTarget, prompt string, doc domain.DocumentState) (domain.DocumentState, error) {
	raw, err := s.gen.generate(ctx, prompt, driven.GenerateOptions{
		Temperature: domain.FieldHintTemperature,
		TopK:        32,
		TopP:        1,
	})
	if err != nil {
		return doc, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	hint := cleanHint(raw)
	if hint == "" {
		return doc, fmt.Errorf("%w: empty %s suggestion", domain.ErrGenerationFailed, target)
	}

	switch target {
	case domain.SuggestDescription:
		doc.Identity.Description = hint
	case domain.SuggestUseCase:
		doc.Identity.UseCase = hint
	case domain.SuggestHTMLElements:
		doc.Visuals.HTMLElements = hint
	case domain.SuggestStyling:
		doc.Visuals.Styling = hint
	}
	return doc, nil
}

func (s *SuggestionService) section(ctx context.Context, target domain.SuggestionTarget, prompt string, doc domain.DocumentState) (domain.DocumentState, error) {
	schema := SuggestionSchema(target)
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return doc, fmt.Errorf("encode %s schema: %w", target, err)
	}
	prompt += "\n\nRespond with JSON only, matching this JSON schema:\n" + string(schemaJSON)

	raw, err := s.gen.generate(ctx, prompt, driven.GenerateOptions{
		Temperature: domain.SectionHintTemperature,
		JSON:        true,
	})
	if err != nil {
		return doc, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	reply := cleanJSON(raw)

	if err := checkSchema(schema, reply); err != nil {
		logger.Warn("%s suggestion rejected: %v", target, err)
		return doc, fmt.Errorf("%w: %s suggestion: %w", domain.ErrGenerationFailed, target, err)
	}
	return mergeSection(target, reply, doc)
}

func checkSchema(schema map[string]any, reply string) error {
	res, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewStringLoader(reply))
	if err != nil {
		return fmt.Errorf("reply is not JSON: %w", err)
	}
	if res.Valid() {
		return nil
	}
	errs := make([]error, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		errs = append(errs, errors.New(e.String()))
	}
	return errors.Join(errs...)
}

func withID[T any](set func(*T, string)) func(T, string) T {
	return func(r T, id string) T {
		set(&r, id)
		return r
	}
}

// mergeSection decodes a validated reply and merges it into doc.
// Records are appended with fresh ids. Notes extend what is already there.
func mergeSection(target domain.SuggestionTarget, reply string, doc domain.DocumentState) (domain.DocumentState, error) {
	decode := func(v any) error {
		if err := json.Unmarshal([]byte(reply), v); err != nil {
			return fmt.Errorf("%w: decode %s suggestion: %w", domain.ErrGenerationFailed, target, err)
		}
		return nil
	}

	switch target {
	case domain.SuggestProps:
		var props []domain.PropDefinition
		if err := decode(&props); err != nil {
			return doc, err
		}
		doc.Props = editing.AddAll(doc.Props, props, withID(func(r *domain.PropDefinition, id string) { r.ID = id }))

	case domain.SuggestState:
		var st domain.StateSection
		if err := decode(&st); err != nil {
			return doc, err
		}
		for i := range st.Variables {
			if st.Variables[i].Hook == "" {
				st.Variables[i].Hook = domain.DefaultStateHook
			}
		}
		doc.State.Variables = editing.AddAll(doc.State.Variables, st.Variables,
			withID(func(r *domain.StateVariable, id string) { r.ID = id }))
		doc.State.Effects = editing.AddAll(doc.State.Effects, st.Effects,
			withID(func(r *domain.SideEffect, id string) { r.ID = id }))
		doc.State.Optimizations = appendNote(doc.State.Optimizations, st.Optimizations)
		doc.State.CustomHooks = appendNote(doc.State.CustomHooks, st.CustomHooks)

	case domain.SuggestInteractions:
		var in domain.InteractionsSection
		if err := decode(&in); err != nil {
			return doc, err
		}
		doc.Interactions.UserInteractions = editing.AddAll(doc.Interactions.UserInteractions, in.UserInteractions,
			withID(func(r *domain.UserInteraction, id string) { r.ID = id }))
		doc.Interactions.EventEmitters = editing.AddAll(doc.Interactions.EventEmitters, in.EventEmitters,
			withID(func(r *domain.EventEmitter, id string) { r.ID = id }))
		doc.Interactions.ConditionalRendering = editing.AddAll(doc.Interactions.ConditionalRendering, in.ConditionalRendering,
			withID(func(r *domain.ConditionalRender, id string) { r.ID = id }))

	case domain.SuggestVisuals:
		var v domain.VisualsSection
		if err := decode(&v); err != nil {
			return doc, err
		}
		doc.Visuals.HTMLElements = appendList(doc.Visuals.HTMLElements, v.HTMLElements)
		if s := strings.TrimSpace(v.Styling); s != "" {
			doc.Visuals.Styling = s
		}
		doc.Visuals.Layout = appendNote(doc.Visuals.Layout, v.Layout)

	case domain.SuggestRobustness:
		var r domain.RobustnessSection
		if err := decode(&r); err != nil {
			return doc, err
		}
		doc.Robustness = domain.RobustnessSection{
			Accessibility: appendNote(doc.Robustness.Accessibility, r.Accessibility),
			ErrorHandling: appendNote(doc.Robustness.ErrorHandling, r.ErrorHandling),
			LoadingStates: appendNote(doc.Robustness.LoadingStates, r.LoadingStates),
			EdgeCases:     appendNote(doc.Robustness.EdgeCases, r.EdgeCases),
			Testing:       appendNote(doc.Robustness.Testing, r.Testing),
		}
	}
	return doc, nil
}

func appendNote(existing, suggestion string) string {
	return joinNonEmpty(existing, suggestion, "\n")
}

func appendList(existing, suggestion string) string {
	return joinNonEmpty(existing, suggestion, ", ")
}

func joinNonEmpty(existing, suggestion, sep string) string {
	suggestion = strings.TrimSpace(suggestion)
	switch {
	case suggestion == "":
		return existing
	case existing == "":
		return suggestion
	default:
		return existing + sep + suggestion
	}
}
