package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

// Ensure the stores implement the interfaces.
var (
	_ driven.DraftStore = (*DraftStore)(nil)
	_ driven.BuildStore = (*BuildStore)(nil)
)

// DraftStore is an in-memory implementation of driven.DraftStore.
// Pair it with a BuildStore via NewStores so deleting a draft drops its builds.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]domain.Draft
	builds *BuildStore
}

// NewDraftStore creates a new in-memory draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]domain.Draft)}
}

// NewStores creates a linked draft and build store.
func NewStores() (*DraftStore, *BuildStore) {
	builds := NewBuildStore()
	drafts := NewDraftStore()
	drafts.builds = builds
	return drafts, builds
}

// Save stores or replaces a draft.
func (s *DraftStore) Save(_ context.Context, draft domain.Draft) error {
	if draft.ID == "" {
		return domain.ErrInvalidInput
	}
	draft.State = draft.State.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = draft
	return nil
}

// Get retrieves a draft by ID.
func (s *DraftStore) Get(_ context.Context, id string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	draft.State = draft.State.Clone()
	return &draft, nil
}

// Delete removes a draft and any builds recorded for it.
func (s *DraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.drafts[id]
	delete(s.drafts, id)
	s.mu.Unlock()

	if !ok {
		return domain.ErrNotFound
	}
	if s.builds != nil {
		s.builds.deleteDraft(id)
	}
	return nil
}

// List returns all drafts, most recently updated first.
func (s *DraftStore) List(_ context.Context) ([]domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		d.State = d.State.Clone()
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// BuildStore is an in-memory implementation of driven.BuildStore.
type BuildStore struct {
	mu     sync.RWMutex
	builds map[string]domain.Build
}

// NewBuildStore creates a new in-memory build store.
func NewBuildStore() *BuildStore {
	return &BuildStore{builds: make(map[string]domain.Build)}
}

// Save stores a build.
func (s *BuildStore) Save(_ context.Context, build domain.Build) error {
	if build.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds[build.ID] = build
	return nil
}

// Get retrieves a build by ID.
func (s *BuildStore) Get(_ context.Context, id string) (*domain.Build, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.builds[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

// ListByDraft returns builds for a draft, newest first.
func (s *BuildStore) ListByDraft(_ context.Context, draftID string, limit int) ([]domain.Build, error) {
	s.mu.RLock()
	var out []domain.Build
	for _, b := range s.builds {
		if b.DraftID == draftID {
			out = append(out, b)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Seq > out[j].Seq
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *BuildStore) deleteDraft(draftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, b := range s.builds {
		if b.DraftID == draftID {
			delete(s.builds, id)
		}
	}
}
