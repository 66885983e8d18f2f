// Package validation selects the code validator from settings.
package validation

import (
	"io"

	"github.com/custodia-labs/archie/internal/adapters/driven/validation/browser"
	"github.com/custodia-labs/archie/internal/adapters/driven/validation/structural"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

// New returns the validator for the configured mode. Unknown modes fall
// back to the structural validator.
func New(settings domain.ValidationSettings) driven.CodeValidator {
	if settings.Mode == domain.ValidationBrowser {
		return browser.New(browser.Config{Bin: settings.BrowserBin})
	}
	return structural.New()
}

// Close releases validator resources, if it holds any.
func Close(v driven.CodeValidator) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
