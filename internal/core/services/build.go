package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/editing"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
	"github.com/custodia-labs/archie/internal/logger"
	"github.com/custodia-labs/archie/internal/promptdoc"
)

// Ensure BuildService implements the interface.
var _ driving.BuildService = (*BuildService)(nil)

// BuildService turns documents into component source.
type BuildService struct {
	gen       *Generator
	prompts   driven.PromptStore
	validator driven.CodeValidator
	builds    driven.BuildStore // optional
	settings  domain.GenerationSettings
	now       func() time.Time

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewBuildService creates a build service. builds may be nil, in which case
// history is not recorded.
func NewBuildService(
	gen *Generator,
	prompts driven.PromptStore,
	validator driven.CodeValidator,
	builds driven.BuildStore,
	settings domain.GenerationSettings,
) *BuildService {
	return &BuildService{
		gen:       gen,
		prompts:   prompts,
		validator: validator,
		builds:    builds,
		settings:  settings,
		now:       time.Now,
	}
}

// Available reports whether an LLM is configured.
func (s *BuildService) Available() bool {
	return s.gen.available()
}

// Build generates, cleans and validates component code for doc.
func (s *BuildService) Build(ctx context.Context, draftID string, doc domain.DocumentState) (*domain.Build, error) {
	if !s.Available() {
		return nil, fmt.Errorf("%w: no LLM provider configured (run 'archie settings llm')", domain.ErrNotConfigured)
	}

	spec := promptdoc.Assemble(doc)
	prompt, err := renderPrompt(s.prompts, driven.PromptBuildComponent, struct{ Document string }{spec})
	if err != nil {
		return nil, err
	}

	ctx, seq, finish := s.begin(ctx)
	defer finish()

	logger.Section("Build")
	logger.Debug("build %d: %d prompt bytes, model %s", seq, len(prompt), s.gen.modelName())

	raw, genErr := s.gen.generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   s.settings.MaxTokens,
		Temperature: s.settings.Temperature,
	})
	if !s.isCurrent(seq) {
		logger.Debug("build %d superseded", seq)
		return nil, domain.ErrSuperseded
	}

	build := &domain.Build{
		ID:        editing.NewID(),
		DraftID:   draftID,
		Seq:       seq,
		Model:     s.gen.modelName(),
		Prompt:    spec,
		CreatedAt: s.now().UTC(),
	}

	if genErr != nil {
		logger.Error("component generation failed: %v", genErr)
		build.Err = genErr.Error()
		build.Code = domain.ErrorCode(genErr.Error())
		build.Validation = domain.ValidationResult{Diagnostic: "generation failed", Validator: s.validatorName()}
		s.record(ctx, build)
		return build, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, genErr)
	}

	build.Code = CleanCode(raw)
	build.Validation = s.check(ctx, build.Code)
	s.record(ctx, build)
	return build, nil
}

// Validate checks source with the configured validator.
func (s *BuildService) Validate(ctx context.Context, source string) (domain.ValidationResult, error) {
	if s.validator == nil {
		return domain.ValidationResult{}, domain.ErrValidatorUnavailable
	}
	return s.validator.Validate(ctx, source)
}

// History lists recorded builds for a draft, newest first.
func (s *BuildService) History(ctx context.Context, draftID string, limit int) ([]domain.Build, error) {
	if s.builds == nil {
		return nil, nil
	}
	return s.builds.ListByDraft(ctx, draftID, limit)
}

// Get returns a recorded build.
func (s *BuildService) Get(ctx context.Context, id string) (*domain.Build, error) {
	if s.builds == nil {
		return nil, domain.ErrNotFound
	}
	return s.builds.Get(ctx, id)
}

// begin registers a new build, cancelling the one in flight.
func (s *BuildService) begin(ctx context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.cancel = cancel
	s.mu.Unlock()

	return ctx, seq, func() {
		s.mu.Lock()
		if s.seq == seq {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}
}

func (s *BuildService) isCurrent(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq == seq
}

// check validates code. A validator that cannot run yields an invalid
// result carrying the reason, so preview stays blocked.
func (s *BuildService) check(ctx context.Context, code string) domain.ValidationResult {
	res, err := s.Validate(ctx, code)
	if err != nil {
		logger.Warn("validation unavailable: %v", err)
		return domain.ValidationResult{Diagnostic: err.Error(), Validator: s.validatorName()}
	}
	if !res.Valid {
		logger.Info("validation failed: %s", res.Diagnostic)
	}
	return res
}

func (s *BuildService) validatorName() string {
	if s.validator == nil {
		return ""
	}
	return s.validator.Name()
}

func (s *BuildService) record(ctx context.Context, build *domain.Build) {
	if s.builds == nil {
		return
	}
	// The caller's context may already be cancelled by a newer build.
	if err := s.builds.Save(context.WithoutCancel(ctx), *build); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("failed to record build %s: %v", build.ID, err)
	}
}
