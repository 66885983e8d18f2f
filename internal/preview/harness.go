// Package preview builds the standalone interactive page for a generated
// component: prop controls on the left, the live component in the middle
// and an event log underneath.
package preview

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"
	"text/template"

	"github.com/custodia-labs/archie/internal/core/domain"
)

// DefaultComponentName is used when the document has no usable name.
const DefaultComponentName = "MyComponent"

// EventLogLimit is the number of emitted events kept on screen.
const EventLogLimit = 50

//go:embed harness.html.tmpl
var harnessSource string

var harnessTemplate = template.Must(template.New("harness").Parse(harnessSource))

// Options tunes the generated page.
type Options struct {
	// ReloadPath, when set, makes the page open a websocket at this path
	// and reload on every message.
	ReloadPath string
}

type harnessData struct {
	Title         string
	ComponentName string
	Code          string
	Props         string
	EventEmitters string
	EventLogLimit int
	ReloadPath    string
}

// Harness renders the preview page for code described by doc.
func Harness(doc domain.DocumentState, code string, opts Options) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: no component code", domain.ErrInvalidInput)
	}
	name := ComponentName(doc)

	props := doc.Props
	if props == nil {
		props = []domain.PropDefinition{}
	}
	emitters := doc.Interactions.EventEmitters
	if emitters == nil {
		emitters = []domain.EventEmitter{}
	}

	data := harnessData{
		Title:         html.EscapeString(name),
		EventLogLimit: EventLogLimit,
	}
	var err error
	fields := []struct {
		dst *string
		v   any
	}{
		{&data.ComponentName, name},
		{&data.Code, prepareSource(code)},
		{&data.Props, props},
		{&data.EventEmitters, emitters},
	}
	for _, f := range fields {
		if *f.dst, err = jsLiteral(f.v); err != nil {
			return "", err
		}
	}
	if opts.ReloadPath != "" {
		if data.ReloadPath, err = jsLiteral(opts.ReloadPath); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	if err := harnessTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return b.String(), nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ComponentName returns the identifier the harness renders.
func ComponentName(doc domain.DocumentState) string {
	name := strings.TrimSpace(doc.Identity.Name)
	if !identifier.MatchString(name) {
		return DefaultComponentName
	}
	return name
}

var (
	importLine      = regexp.MustCompile(`(?m)^\s*import\s[^\n]*$`)
	exportDefaultAs = regexp.MustCompile(`(?m)^\s*export\s+default\s+[A-Za-z_$][A-Za-z0-9_$]*\s*;?\s*$`)
	exportDefault   = regexp.MustCompile(`(?m)^(\s*)export\s+default\s+`)
	exportNamed     = regexp.MustCompile(`(?m)^(\s*)export\s+`)
)

// prepareSource turns a module into a script body: React comes from the
// page, so imports go, and exports become plain declarations.
func prepareSource(code string) string {
	code = importLine.ReplaceAllString(code, "")
	code = exportDefaultAs.ReplaceAllString(code, "")
	code = exportDefault.ReplaceAllString(code, "$1")
	return exportNamed.ReplaceAllString(code, "$1")
}

// jsLiteral encodes v for direct use in a script. encoding/json escapes
// <, > and & so the value cannot close the surrounding script element.
func jsLiteral(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode preview data: %w", err)
	}
	return string(b), nil
}
