package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingEditorService.Error(), ErrMissingDraftService.Error())
	assert.Contains(t, ErrMissingEditorService.Error(), "editor service")
	assert.Contains(t, ErrMissingDraftService.Error(), "draft service")
}
