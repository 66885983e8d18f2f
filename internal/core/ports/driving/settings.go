package driving

import "github.com/custodia-labs/archie/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMBaseURL overrides the provider endpoint. Empty restores the default.
	SetLLMBaseURL(url string) error

	// SetGeneration updates build tuning.
	SetGeneration(gen domain.GenerationSettings) error

	// SetValidation selects the code validator.
	SetValidation(v domain.ValidationSettings) error

	// SetGitHubToken stores the token used for gist publishing.
	SetGitHubToken(token string) error

	// Validate checks the settings are internally consistent.
	Validate() error

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
