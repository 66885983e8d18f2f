package driving

import (
	"context"

	"github.com/custodia-labs/archie/internal/core/domain"
)

// DraftService manages saved drafts.
type DraftService interface {
	// Create saves doc as a new draft.
	Create(ctx context.Context, name string, doc domain.DocumentState) (*domain.Draft, error)

	// Save stores changes to an existing draft and bumps UpdatedAt.
	Save(ctx context.Context, draft *domain.Draft) error

	// Get returns a draft by exact id.
	Get(ctx context.Context, id string) (*domain.Draft, error)

	// Resolve finds a draft by id, unique id prefix or exact name.
	Resolve(ctx context.Context, ref string) (*domain.Draft, error)

	// List returns all drafts, most recently updated first.
	List(ctx context.Context) ([]domain.Draft, error)

	// Delete removes a draft.
	Delete(ctx context.Context, id string) error
}
