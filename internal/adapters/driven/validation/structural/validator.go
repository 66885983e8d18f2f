// Package structural checks generated component source without executing it.
//
// The checks are lexical: the source must be non-empty, must not be a
// generation error placeholder, must contain an export default, must not use
// template literals and must have balanced brackets outside strings,
// comments and JSX text. Diagnostics are reported as "line:col: message".
package structural

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

// Name identifies this validator in results.
const Name = "structural"

var _ driven.CodeValidator = (*Validator)(nil)

var exportDefault = regexp.MustCompile(`\bexport\s+default\b`)

// Validator is the in-process code validator.
type Validator struct{}

// New returns a structural validator.
func New() *Validator {
	return &Validator{}
}

// Name returns the validator name.
func (v *Validator) Name() string { return Name }

// Validate never returns an error.
func (v *Validator) Validate(_ context.Context, source string) (domain.ValidationResult, error) {
	res := domain.ValidationResult{Validator: Name, Valid: true}
	if d := Check(source); d != nil {
		res.Valid = false
		res.Diagnostic = d.Error()
	}
	return res, nil
}

// Diagnostic is a problem at a source position. Line and Col are 1-based.
type Diagnostic struct {
	Line, Col int
	Message   string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Col, d.Message)
}

// Check returns the first problem found in source, or nil.
func Check(source string) *Diagnostic {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return &Diagnostic{Line: 1, Col: 1, Message: "source is empty"}
	}
	if strings.HasPrefix(trimmed, domain.ErrorCodePrefix) {
		return &Diagnostic{Line: 1, Col: 1, Message: "source is a generation error: " +
			strings.TrimPrefix(firstLine(trimmed), domain.ErrorCodePrefix)}
	}

	code, d := scan(source)
	if d != nil {
		return d
	}
	if !exportDefault.MatchString(code) {
		return &Diagnostic{Line: 1, Col: 1, Message: "missing export default"}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

const (
	inCode = iota
	inLineComment
	inBlockComment
	inString
)

// Frame kinds besides the code brackets '(', '[' and '{'.
const (
	tagFrame     = '<' // inside a JSX tag, between '<' and '>'
	elementFrame = '>' // inside the children of a JSX element
)

type frame struct {
	kind      rune
	line, col int
	closing   bool
}

func (f frame) unclosed() string {
	switch f.kind {
	case tagFrame:
		return "unclosed JSX tag"
	case elementFrame:
		return "unclosed JSX element"
	default:
		return fmt.Sprintf("unclosed '%c'", f.kind)
	}
}

var closers = map[rune]rune{')': '(', ']': '[', '}': '{'}

// exprKeywords may be followed by an expression, and so by a JSX element.
var exprKeywords = map[string]bool{
	"return": true, "case": true, "default": true, "typeof": true, "instanceof": true,
	"in": true, "of": true, "new": true, "delete": true, "void": true,
	"throw": true, "yield": true, "await": true, "else": true, "do": true,
}

type scanner struct {
	src       []rune
	i         int
	line, col int
	state     int
	quote     rune
	stack     []frame
	prev      int // index of the last significant code rune, or -1
	out       strings.Builder
}

// scan walks source once. It returns the code with comments, string
// contents and JSX text blanked out, or the first lexical problem.
//
// Quoted strings end at a newline. JSX children are text, so quotes, slashes
// and brackets inside them only matter within {expressions}.
func scan(source string) (string, *Diagnostic) {
	s := &scanner{src: []rune(source), line: 1, prev: -1}
	s.out.Grow(len(source))

	for ; s.i < len(s.src); s.i++ {
		r := s.src[s.i]
		s.col++
		if d := s.step(r, s.peek()); d != nil {
			return "", d
		}
		if r == '\n' {
			s.newline()
		}
	}

	if len(s.stack) > 0 {
		f := s.stack[len(s.stack)-1]
		return "", &Diagnostic{Line: f.line, Col: f.col, Message: f.unclosed()}
	}
	return s.out.String(), nil
}

func (s *scanner) step(r, next rune) *Diagnostic {
	switch s.state {
	case inLineComment:
		if r == '\n' {
			s.state = inCode
		}
	case inBlockComment:
		if r == '*' && next == '/' {
			s.state = inCode
			s.skip()
		}
	case inString:
		switch r {
		case '\\':
			if next != 0 {
				s.skip()
			}
		case s.quote, '\n':
			s.state = inCode
			s.prev = s.i
		}
	default:
		switch s.mode() {
		case elementFrame:
			s.text(r, next)
		case tagFrame:
			return s.tag(r, next)
		default:
			return s.code(r, next)
		}
	}
	return nil
}

func (s *scanner) code(r, next rune) *Diagnostic {
	switch {
	case r == '/' && next == '/':
		s.state = inLineComment
		return nil
	case r == '/' && next == '*':
		s.state = inBlockComment
		s.skip()
		return nil
	case r == '"' || r == '\'':
		s.state = inString
		s.quote = r
		return nil
	case r == '`':
		return s.errorf("template literals are not allowed")
	case r == '<' && startsTag(next) && s.exprStart():
		s.push(tagFrame, false)
		return nil
	case r == '(' || r == '[' || r == '{':
		s.push(r, false)
	case closers[r] != 0:
		if len(s.stack) == 0 || s.stack[len(s.stack)-1].kind != closers[r] {
			return s.errorf("unexpected '%c'", r)
		}
		s.stack = s.stack[:len(s.stack)-1]
	}

	if !unicode.IsSpace(r) {
		s.prev = s.i
	}
	if r != '\n' {
		s.out.WriteRune(r)
	}
	return nil
}

func (s *scanner) tag(r, next rune) *Diagnostic {
	switch {
	case r == '/' && next == '>':
		s.skip()
		s.closeTag(true)
	case r == '>':
		s.closeTag(false)
	case r == '/' && next == '/':
		s.state = inLineComment
	case r == '/' && next == '*':
		s.state = inBlockComment
		s.skip()
	case r == '"' || r == '\'':
		s.state = inString
		s.quote = r
	case r == '`':
		return s.errorf("template literals are not allowed")
	case r == '{':
		s.push('{', false)
	}
	return nil
}

func (s *scanner) text(r, next rune) {
	switch r {
	case '{':
		s.push('{', false)
	case '<':
		s.push(tagFrame, next == '/')
		if next == '/' {
			s.skip()
		}
	}
}

// closeTag ends the tag on top of the stack. An opening tag starts its
// element's children; a closing tag ends the element.
func (s *scanner) closeTag(selfClosing bool) {
	t := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.prev = s.i

	switch {
	case t.closing:
		if s.mode() == elementFrame {
			s.stack = s.stack[:len(s.stack)-1]
		}
	case !selfClosing:
		s.stack = append(s.stack, frame{kind: elementFrame, line: t.line, col: t.col})
	}
}

// exprStart reports whether an expression can begin after the previous
// significant rune. It tells a JSX tag from a less-than comparison.
func (s *scanner) exprStart() bool {
	if s.prev < 0 {
		return true
	}
	p := s.src[s.prev]
	if isIdent(p) {
		start := s.prev
		for start > 0 && isIdent(s.src[start-1]) {
			start--
		}
		return exprKeywords[string(s.src[start:s.prev+1])]
	}
	return strings.ContainsRune("([{,;:=!&|?+-*/%<>~^", p)
}

func (s *scanner) mode() rune {
	if len(s.stack) == 0 {
		return 0
	}
	return s.stack[len(s.stack)-1].kind
}

func (s *scanner) push(kind rune, closing bool) {
	s.stack = append(s.stack, frame{kind: kind, line: s.line, col: s.col, closing: closing})
}

func (s *scanner) peek() rune {
	if s.i+1 < len(s.src) {
		return s.src[s.i+1]
	}
	return 0
}

// skip consumes the rune after the current one.
func (s *scanner) skip() {
	s.i++
	s.col++
	if s.src[s.i] == '\n' {
		s.newline()
	}
}

func (s *scanner) newline() {
	s.out.WriteRune('\n')
	s.line++
	s.col = 0
}

func (s *scanner) errorf(format string, args ...any) *Diagnostic {
	return &Diagnostic{Line: s.line, Col: s.col, Message: fmt.Sprintf(format, args...)}
}

func startsTag(r rune) bool {
	return unicode.IsLetter(r) || r == '>' || r == '_' || r == '$'
}

func isIdent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}
