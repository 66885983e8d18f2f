package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

// fakeLLM returns canned replies in order, or calls reply when set.
type fakeLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
	reply   func(ctx context.Context, prompt string) (string, error)
	prompts []string
	opts    []driven.GenerateOptions
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	reply := f.reply
	var next string
	if len(f.replies) > 0 {
		next, f.replies = f.replies[0], f.replies[1:]
	}
	f.mu.Unlock()

	if reply != nil {
		return reply(ctx, prompt)
	}
	if f.err != nil {
		return "", f.err
	}
	return next, nil
}

func (f *fakeLLM) ModelName() string          { return "fake-model" }
func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error               { return nil }

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func (f *fakeLLM) lastOpts() driven.GenerateOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opts[len(f.opts)-1]
}

// mapPrompts serves templates from a map.
type mapPrompts map[string]string

func (m mapPrompts) Load(name string) (string, error) {
	if s, ok := m[name]; ok {
		return s, nil
	}
	return "", domain.ErrNotFound
}

func (m mapPrompts) Reload() {}

func testPrompts() mapPrompts {
	return mapPrompts{
		driven.PromptBuildComponent:      "RULES\n**Component Specification:**\n{{.Document}}",
		driven.PromptSuggestDescription:  `Describe "{{or .Name "unnamed component"}}".`,
		driven.PromptSuggestUseCase:      `Use case for "{{.Name}}" described as "{{or .Description "No description yet"}}".`,
		driven.PromptSuggestHTMLElements: `Elements for {{.Name}}.`,
		driven.PromptSuggestStyling:      `Styling strategy.`,
		driven.PromptSuggestProps:        `Props for {{.Name}}.`,
		driven.PromptSuggestState:        `State for {{.Name}}.`,
		driven.PromptSuggestInteractions: `Interactions for {{.Name}}.`,
		driven.PromptSuggestVisuals:      `Visuals for {{.Name}}.`,
		driven.PromptSuggestRobustness:   `Robustness for {{.Name}}.`,
	}
}

// fakeValidator accepts everything except sources listed in reject.
type fakeValidator struct {
	reject map[string]string
	err    error
}

func (v *fakeValidator) Validate(_ context.Context, source string) (domain.ValidationResult, error) {
	if v.err != nil {
		return domain.ValidationResult{}, v.err
	}
	if msg, ok := v.reject[source]; ok {
		return domain.ValidationResult{Diagnostic: msg, Validator: v.Name()}, nil
	}
	return domain.ValidationResult{Valid: true, Validator: v.Name()}, nil
}

func (v *fakeValidator) Name() string { return "fake" }

// fakePublisher records uploads.
type fakePublisher struct {
	desc  string
	files []driven.PublishFile
	err   error
}

func (p *fakePublisher) Publish(_ context.Context, desc string, files []driven.PublishFile) (string, error) {
	p.desc, p.files = desc, files
	if p.err != nil {
		return "", p.err
	}
	return "https://gist.github.com/abc", nil
}
