package driven

import (
	"context"

	"github.com/custodia-labs/archie/internal/core/domain"
)

// CodeValidator checks that generated source can be previewed.
//
// An unacceptable source is reported through ValidationResult, not as an
// error. An error means the validator itself could not run.
type CodeValidator interface {
	Validate(ctx context.Context, source string) (domain.ValidationResult, error)

	// Name identifies the validator in results and logs.
	Name() string
}
