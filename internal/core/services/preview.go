package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
	"github.com/custodia-labs/archie/internal/preview"
)

// Ensure PreviewService implements the interface.
var _ driving.PreviewService = (*PreviewService)(nil)

// PreviewService builds preview pages for code that passes validation.
type PreviewService struct {
	validator driven.CodeValidator
	opts      preview.Options
}

// NewPreviewService creates a preview service.
func NewPreviewService(validator driven.CodeValidator, opts preview.Options) *PreviewService {
	return &PreviewService{validator: validator, opts: opts}
}

// Page validates code and returns the preview HTML.
func (s *PreviewService) Page(ctx context.Context, doc domain.DocumentState, code string) (string, domain.ValidationResult, error) {
	if s.validator == nil {
		return "", domain.ValidationResult{}, domain.ErrValidatorUnavailable
	}
	res, err := s.validator.Validate(ctx, code)
	if err != nil {
		return "", res, fmt.Errorf("validate component: %w", err)
	}
	if !res.Valid {
		return "", res, fmt.Errorf("%w: %s", domain.ErrPreviewBlocked, res.Diagnostic)
	}

	page, err := preview.Harness(doc, code, s.opts)
	if err != nil {
		return "", res, err
	}
	return page, res, nil
}
