package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidField indicates an unknown field key or an unparsable field value.
	ErrInvalidField = errors.New("invalid field")

	// ErrNotConfigured indicates a required setting has not been provided.
	ErrNotConfigured = errors.New("not configured")

	// ErrLLMUnavailable indicates the LLM service is not configured or unreachable.
	// Builds and suggestions are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrGenerationFailed indicates the provider failed to return usable output.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrSuperseded indicates a newer build was started before this one finished.
	// Callers discard the result.
	ErrSuperseded = errors.New("superseded by a newer request")

	// ErrValidatorUnavailable indicates the code validator could not run.
	ErrValidatorUnavailable = errors.New("validator unavailable")

	// ErrPreviewBlocked indicates the preview was requested for code that failed validation.
	ErrPreviewBlocked = errors.New("preview blocked: code failed validation")

	// ErrPublishFailed indicates the publisher rejected the upload.
	ErrPublishFailed = errors.New("publish failed")
)
