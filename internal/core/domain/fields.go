package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldKind identifies how a field value is edited and stored.
type FieldKind int

const (
	// FieldText is free text.
	FieldText FieldKind = iota
	// FieldBool is a true/false flag.
	FieldBool
)

// Field describes one editable field of a record or singleton section.
type Field struct {
	// Key is the stable identifier used by the CLI, MCP tools and draft files.
	Key string

	// Label is the human-facing name shown in forms.
	Label string

	// Kind determines how the value is parsed.
	Kind FieldKind
}

// FieldSet is implemented by every record and singleton section.
// It exposes fields by key so editors can work on any section without
// knowing its concrete type.
type FieldSet interface {
	Fields() []Field
	FieldValue(key string) string
}

// ParseBool accepts the spellings people type into forms.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "no", "n", "0", "optional":
		return false, nil
	case "true", "yes", "y", "1", "required":
		return true, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidField, value)
	}
	return b, nil
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func unknownField(owner, key string) error {
	return fmt.Errorf("%w: %s has no field %q", ErrInvalidField, owner, key)
}

// setText assigns value to the text field named key.
func setText(owner string, fields map[string]*string, key, value string) error {
	ptr, ok := fields[key]
	if !ok {
		return unknownField(owner, key)
	}
	*ptr = value
	return nil
}

// textValue reads the text field named key, or "" when unknown.
func textValue(fields map[string]*string, key string) string {
	if ptr, ok := fields[key]; ok {
		return *ptr
	}
	return ""
}

// FieldKeys returns the keys of fields in order.
func FieldKeys(fields []Field) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}
