package domain

import "time"

// Draft is a named DocumentState kept between sessions.
type Draft struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	State     DocumentState `json:"state" yaml:"state"`
	CreatedAt time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" yaml:"updatedAt"`
}

// DisplayName returns the draft name, falling back to the component name.
func (d Draft) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	if d.State.Identity.Name != "" {
		return d.State.Identity.Name
	}
	return d.ID
}

// ValidationResult is the outcome of checking generated source.
// An invalid result is not an error: Diagnostic explains what is wrong
// and is shown to the user verbatim.
type ValidationResult struct {
	Valid      bool   `json:"valid"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Validator  string `json:"validator"`
}

// Build is one generation run.
type Build struct {
	ID      string `json:"id"`
	DraftID string `json:"draftId,omitempty"`

	// Seq orders builds within a process; only the highest is current.
	Seq uint64 `json:"seq"`

	Model      string           `json:"model"`
	Prompt     string           `json:"prompt"`
	Code       string           `json:"code"`
	Validation ValidationResult `json:"validation"`

	// Err is the readable failure message when generation failed.
	Err string `json:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Succeeded reports whether the build produced code that passed validation.
func (b Build) Succeeded() bool {
	return b.Err == "" && b.Validation.Valid
}

// ErrorCodePrefix starts the placeholder source shown when a build fails.
const ErrorCodePrefix = "// Error generating component: "

// ErrorCode renders a generation failure as a source comment so the code
// panel always shows something readable.
func ErrorCode(msg string) string {
	return ErrorCodePrefix + msg + "\n// Check the logs for more details."
}
