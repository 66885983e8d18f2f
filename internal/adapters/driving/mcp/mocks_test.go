package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/services"
)

// mockBuildService is a mock implementation of driving.BuildService.
type mockBuildService struct {
	available bool
	build     *domain.Build
	result    domain.ValidationResult
	err       error

	builtDoc domain.DocumentState
}

func (m *mockBuildService) Available() bool { return m.available }

func (m *mockBuildService) Build(_ context.Context, draftID string, doc domain.DocumentState) (*domain.Build, error) {
	m.builtDoc = doc
	if m.build != nil {
		m.build.DraftID = draftID
	}
	return m.build, m.err
}

func (m *mockBuildService) Validate(_ context.Context, _ string) (domain.ValidationResult, error) {
	return m.result, m.err
}

func (m *mockBuildService) History(_ context.Context, _ string, _ int) ([]domain.Build, error) {
	return nil, m.err
}

func (m *mockBuildService) Get(_ context.Context, _ string) (*domain.Build, error) {
	return m.build, m.err
}

// newTestServer returns a server over an in-memory draft store with one
// draft named "Rating Stars".
func newTestServer(t *testing.T, builds *mockBuildService) (*Server, *domain.Draft) {
	t.Helper()

	drafts := services.NewDraftService(memory.NewDraftStore())
	doc := domain.DefaultDocumentState()
	doc.Identity.Name = "RatingStars"
	doc.Identity.Description = "Five clickable stars"
	d, err := drafts.Create(context.Background(), "Rating Stars", doc)
	require.NoError(t, err)

	ports := &Ports{Drafts: drafts}
	if builds != nil {
		ports.Builds = builds
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server, d
}
