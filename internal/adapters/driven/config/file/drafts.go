package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/archie/internal/core/domain"
)

// Format is a draft file encoding.
type Format string

// Supported draft file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: unsupported draft format %q (use .json, .yaml or .yml)", domain.ErrInvalidInput, s)
}

// ReadDraft loads a draft file. The file may hold a full draft or just a
// document; a bare document comes back as a draft without id or timestamps.
func ReadDraft(path string) (*domain.Draft, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	d, err := DecodeDraft(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// DecodeDraft parses a draft or bare document.
func DecodeDraft(data []byte, format Format) (*domain.Draft, error) {
	unmarshal := json.Unmarshal
	if format == FormatYAML {
		unmarshal = yaml.Unmarshal
	}

	var probe map[string]any
	if err := unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	var d domain.Draft
	if _, ok := probe["state"]; ok {
		if err := unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return &d, nil
	}
	if err := unmarshal(data, &d.State); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return &d, nil
}

// WriteDraft saves a draft to path in the format given by its extension.
func WriteDraft(path string, d domain.Draft) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeDraft(&buf, format, d); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}

// EncodeDraft writes d to w.
func EncodeDraft(w io.Writer, format Format, d domain.Draft) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: unsupported draft format %q", domain.ErrInvalidInput, format)
}
