package driven

import (
	"context"

	"github.com/custodia-labs/archie/internal/core/domain"
)

// DraftStore persists drafts.
type DraftStore interface {
	// Save inserts or replaces a draft by ID.
	Save(ctx context.Context, draft domain.Draft) error

	// Get returns the draft with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Draft, error)

	// Delete removes a draft and its build history.
	Delete(ctx context.Context, id string) error

	// List returns all drafts, most recently updated first.
	List(ctx context.Context) ([]domain.Draft, error)
}

// BuildStore persists build history.
type BuildStore interface {
	Save(ctx context.Context, build domain.Build) error

	// Get returns the build with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Build, error)

	// ListByDraft returns builds for a draft, newest first, at most limit
	// entries (0 means no limit).
	ListByDraft(ctx context.Context, draftID string, limit int) ([]domain.Build, error)
}
