package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/logger"
)

// Generator wraps an LLM with throttling and a per-call timeout.
// Build and suggestion services share one so their calls count against
// the same budget.
type Generator struct {
	llm     driven.LLMService
	limiter *rate.Limiter
	timeout time.Duration
}

// NewGenerator creates the shared provider client for build and suggestion
// services. A nil llm yields a generator that reports itself unavailable.
func NewGenerator(llm driven.LLMService, gen domain.GenerationSettings) *Generator {
	g := &Generator{llm: llm, timeout: gen.Timeout}
	if gen.RequestsPerMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(gen.RequestsPerMinute)), 1)
	}
	return g
}

func (g *Generator) available() bool {
	return g != nil && g.llm != nil
}

func (g *Generator) modelName() string {
	if !g.available() {
		return ""
	}
	return g.llm.ModelName()
}

func (g *Generator) generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if !g.available() {
		return "", domain.ErrNotConfigured
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for rate limit: %w", err)
		}
	}

	done := logger.Timed("llm generate (" + g.llm.ModelName() + ")")
	defer done()
	return g.llm.Generate(ctx, prompt, opts)
}

// renderPrompt loads a template from the store and executes it with data.
func renderPrompt(store driven.PromptStore, name string, data any) (string, error) {
	src, err := store.Load(name)
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", name, err)
	}
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse prompt %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

var (
	codeFence = regexp.MustCompile("^```(?:tsx|jsx|javascript)?\\n|```$")
	jsonFence = regexp.MustCompile("^```(?:json)?\\n|```$")
)

// CleanCode strips a Markdown code fence around generated source.
func CleanCode(raw string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(strings.TrimSpace(raw), ""))
}

func cleanJSON(raw string) string {
	return strings.TrimSpace(jsonFence.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// cleanHint trims a single-value reply and drops wrapping quotes.
func cleanHint(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
