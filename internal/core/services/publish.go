package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
	"github.com/custodia-labs/archie/internal/preview"
)

// Ensure PublishService implements the interface.
var _ driving.PublishService = (*PublishService)(nil)

// PublishService shares builds through a Publisher.
type PublishService struct {
	publisher driven.Publisher // optional
}

// NewPublishService creates a publish service. publisher may be nil.
func NewPublishService(publisher driven.Publisher) *PublishService {
	return &PublishService{publisher: publisher}
}

// Available reports whether a publisher is configured.
func (s *PublishService) Available() bool {
	return s.publisher != nil
}

// Publish uploads the component code and the prompt it was built from.
// Failed builds are refused so a placeholder never gets shared.
func (s *PublishService) Publish(ctx context.Context, name string, build *domain.Build) (string, error) {
	if !s.Available() {
		return "", fmt.Errorf("%w: no GitHub token (set %s or run 'archie settings publish')",
			domain.ErrNotConfigured, EnvGitHubToken)
	}
	if build == nil {
		return "", fmt.Errorf("%w: no build to publish", domain.ErrInvalidInput)
	}
	if build.Err != "" {
		return "", fmt.Errorf("%w: build %s failed: %s", domain.ErrInvalidInput, build.ID, build.Err)
	}

	component := preview.ComponentName(domain.DocumentState{Identity: domain.Identity{Name: name}})
	files := []driven.PublishFile{
		{Name: component + ".tsx", Content: build.Code},
		{Name: component + ".prompt.md", Content: build.Prompt},
	}
	desc := fmt.Sprintf("%s: React component generated with archie (%s)", component, build.Model)

	url, err := s.publisher.Publish(ctx, desc, files)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPublishFailed, err)
	}
	return url, nil
}
