package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/archie/internal/adapters/driven/config/file"
	"github.com/custodia-labs/archie/internal/core/domain"
)

// parseAssignments turns key=value arguments into a field map.
func parseAssignments(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidInput, arg)
		}
		fields[key] = value
	}
	return fields, nil
}

func resolveDraft(ctx context.Context, ref string) (*domain.Draft, error) {
	if draftService == nil {
		return nil, notConfigured("draft")
	}
	if ref == "" {
		return nil, fmt.Errorf("%w: --draft is required", domain.ErrInvalidInput)
	}
	return draftService.Resolve(ctx, ref)
}

// loadDocument reads a document from a draft file or, when path is empty,
// from a stored draft. The stored draft is returned when one was used.
func loadDocument(ctx context.Context, path, ref string) (domain.DocumentState, *domain.Draft, error) {
	switch {
	case path != "" && ref != "":
		return domain.DocumentState{}, nil, fmt.Errorf("%w: give a file or --draft, not both", domain.ErrInvalidInput)
	case path != "":
		d, err := file.ReadDraft(path)
		if err != nil {
			return domain.DocumentState{}, nil, err
		}
		return d.State, nil, nil
	case ref != "":
		d, err := resolveDraft(ctx, ref)
		if err != nil {
			return domain.DocumentState{}, nil, err
		}
		return d.State, d, nil
	}
	return domain.DocumentState{}, nil, fmt.Errorf("%w: give a draft file or --draft", domain.ErrInvalidInput)
}

// latestSuccessfulBuild returns the newest build for a draft that passed validation.
func latestSuccessfulBuild(ctx context.Context, draft *domain.Draft) (*domain.Build, error) {
	if buildService == nil {
		return nil, notConfigured("build")
	}
	builds, err := buildService.History(ctx, draft.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load build history: %w", err)
	}
	for i := range builds {
		if builds[i].Succeeded() {
			return &builds[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no successful build for %q (run 'archie build --draft %s')",
		domain.ErrNotFound, draft.DisplayName(), shortID(draft.ID))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
