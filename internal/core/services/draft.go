package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/editing"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// Ensure DraftService implements the interface.
var _ driving.DraftService = (*DraftService)(nil)

// DraftService manages saved drafts.
type DraftService struct {
	store driven.DraftStore
	now   func() time.Time
}

// NewDraftService creates a new draft service.
func NewDraftService(store driven.DraftStore) *DraftService {
	return &DraftService{store: store, now: time.Now}
}

// Create saves doc as a new draft.
func (s *DraftService) Create(ctx context.Context, name string, doc domain.DocumentState) (*domain.Draft, error) {
	now := s.now().UTC()
	draft := domain.Draft{
		ID:        editing.NewID(),
		Name:      strings.TrimSpace(name),
		State:     doc.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return &draft, nil
}

// Save stores changes to an existing draft.
func (s *DraftService) Save(ctx context.Context, draft *domain.Draft) error {
	if draft == nil || draft.ID == "" {
		return fmt.Errorf("%w: draft id required", domain.ErrInvalidInput)
	}
	existing, err := s.store.Get(ctx, draft.ID)
	if err != nil {
		return err
	}
	draft.CreatedAt = existing.CreatedAt
	draft.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, *draft); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Get returns a draft by exact id.
func (s *DraftService) Get(ctx context.Context, id string) (*domain.Draft, error) {
	return s.store.Get(ctx, id)
}

// Resolve finds a draft by id, unique id prefix or exact name.
func (s *DraftService) Resolve(ctx context.Context, ref string) (*domain.Draft, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: draft reference required", domain.ErrInvalidInput)
	}

	d, err := s.store.Get(ctx, ref)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	drafts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []domain.Draft
	for _, d := range drafts {
		if strings.HasPrefix(d.ID, ref) || d.Name == ref {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: no draft matches %q", domain.ErrNotFound, ref)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d drafts", domain.ErrInvalidInput, ref, len(matches))
	}
}

// List returns all drafts, most recently updated first.
func (s *DraftService) List(ctx context.Context) ([]domain.Draft, error) {
	return s.store.List(ctx)
}

// Delete removes a draft and its build history.
func (s *DraftService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
