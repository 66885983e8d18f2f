package tui

import "errors"

// ErrMissingEditorService is returned when the editor service is not provided.
var ErrMissingEditorService = errors.New("tui: editor service is required")

// ErrMissingDraftService is returned when the draft service is not provided.
var ErrMissingDraftService = errors.New("tui: draft service is required")
