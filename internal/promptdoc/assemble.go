package promptdoc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/archie/internal/core/domain"
)

// Header renders the title and objective block from the identity.
func Header(id domain.Identity) string {
	name := or(id.Name, placeholderName)
	return fmt.Sprintf("# React Component Generation Request: %s\n\n**Objective:**\n"+
		"To create a highly reusable and well-structured React component named `%s` that %s. "+
		"This component will serve as %s.",
		name, name, or(id.Description, placeholderDescription), or(id.UseCase, placeholderUseCase))
}

// Assemble renders the full document: the header followed by every
// non-empty section in fixed order.
func Assemble(d domain.DocumentState) string {
	parts := []string{Header(d.Identity)}
	for _, s := range Sections(d) {
		if frag := renderOrEmpty(s); frag != "" {
			parts = append(parts, frag)
		}
	}
	return strings.Join(parts, "\n")
}

// Assembler memoizes Assemble on the last document seen.
// It is safe for concurrent use.
type Assembler struct {
	mu     sync.Mutex
	last   domain.DocumentState
	output string
	valid  bool
	hits   int
}

// NewAssembler creates an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble returns the document for d, reusing the previous result when d
// equals the previous input.
func (a *Assembler) Assemble(d domain.DocumentState) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.valid && a.last.Equal(d) {
		a.hits++
		return a.output
	}
	a.output = Assemble(d)
	a.last = d.Clone()
	a.valid = true
	return a.output
}

// Hits returns how many calls were served from the cache.
func (a *Assembler) Hits() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits
}

// SectionSummary describes one section for outlines and status lines.
type SectionSummary struct {
	Title   string `json:"title"`
	Present bool   `json:"present"`
	Records int    `json:"records"`
}

// Outline reports which sections the document will contain.
func Outline(d domain.DocumentState) []SectionSummary {
	counts := []int{
		len(d.Props),
		len(d.State.Variables) + len(d.State.Effects),
		len(d.Interactions.UserInteractions) + len(d.Interactions.EventEmitters) +
			len(d.Interactions.ConditionalRendering),
		0,
		0,
	}
	sections := Sections(d)
	out := make([]SectionSummary, len(sections))
	for i, s := range sections {
		out[i] = SectionSummary{Title: s.Title(), Present: !isSectionEmpty(s), Records: counts[i]}
	}
	return out
}
