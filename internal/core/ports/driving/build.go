package driving

import (
	"context"

	"github.com/custodia-labs/archie/internal/core/domain"
)

// BuildService generates component source from a document.
type BuildService interface {
	// Available reports whether an LLM is configured.
	Available() bool

	// Build generates, cleans and validates component code for doc.
	//
	// A provider failure returns the recorded build (with Err set and a
	// readable placeholder as Code) together with an error wrapping
	// domain.ErrGenerationFailed. Starting another build cancels this one;
	// a build that finishes after a newer one started returns
	// domain.ErrSuperseded and should be discarded.
	Build(ctx context.Context, draftID string, doc domain.DocumentState) (*domain.Build, error)

	// Validate checks source with the configured validator.
	Validate(ctx context.Context, source string) (domain.ValidationResult, error)

	// History lists recorded builds for a draft, newest first.
	History(ctx context.Context, draftID string, limit int) ([]domain.Build, error)

	// Get returns a recorded build.
	Get(ctx context.Context, id string) (*domain.Build, error)
}

// SuggestionService asks the LLM to fill in parts of a document.
type SuggestionService interface {
	// Available reports whether an LLM is configured.
	Available() bool

	// Suggest returns doc with the suggestion for target merged in.
	// Suggested records are appended with fresh ids; text fields are
	// filled when empty and extended otherwise.
	Suggest(ctx context.Context, target domain.SuggestionTarget, doc domain.DocumentState) (domain.DocumentState, error)
}

// PreviewService builds the standalone preview page.
type PreviewService interface {
	// Page validates code and returns the preview HTML. Code that fails
	// validation returns the result with an error wrapping
	// domain.ErrPreviewBlocked.
	Page(ctx context.Context, doc domain.DocumentState, code string) (string, domain.ValidationResult, error)
}

// PublishService shares a build.
type PublishService interface {
	// Available reports whether publishing is configured.
	Available() bool

	// Publish uploads the build's code and prompt and returns a URL.
	Publish(ctx context.Context, name string, build *domain.Build) (string, error)
}
