package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a text generation provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is the Google Gemini API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// AllLLMProviders returns the providers that can generate components.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "qwen2.5-coder",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-2.5-flash",
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// GenerationSettings controls build and suggestion requests.
type GenerationSettings struct {
	// Temperature for component builds.
	Temperature float64

	// MaxTokens caps the generated output.
	MaxTokens int

	// RequestsPerMinute throttles provider calls. Zero disables throttling.
	RequestsPerMinute int

	// Timeout bounds a single provider call.
	Timeout time.Duration
}

// Temperatures used for suggestion requests.
const (
	FieldHintTemperature     = 0.4
	SectionHintTemperature   = 0.5
	DefaultBuildTemperature  = 0.1
	DefaultMaxTokens         = 8192
	DefaultRequestsPerMinute = 10
	DefaultGenerationTimeout = 2 * time.Minute
)

// ValidationMode selects the code validator.
type ValidationMode string

// Available validation modes.
const (
	// ValidationStructural runs lexical checks in process.
	ValidationStructural ValidationMode = "structural"

	// ValidationBrowser transpiles the code with Babel in headless Chromium.
	ValidationBrowser ValidationMode = "browser"
)

// IsValid returns true if the mode is recognised.
func (m ValidationMode) IsValid() bool {
	return m == ValidationStructural || m == ValidationBrowser
}

// Description returns a human-readable description of the mode.
func (m ValidationMode) Description() string {
	switch m {
	case ValidationStructural:
		return "Structural (built-in lexical checks)"
	case ValidationBrowser:
		return "Browser (Babel in headless Chromium)"
	default:
		return unknownDescription
	}
}

// ValidationSettings configures the code validator.
type ValidationSettings struct {
	Mode ValidationMode

	// BrowserBin is the Chromium binary for browser validation.
	// Empty means download or discover one automatically.
	BrowserBin string
}

// StorageBackend selects where drafts and builds are kept.
type StorageBackend string

// Available storage backends.
const (
	StorageSQLite StorageBackend = "sqlite"
	StorageMemory StorageBackend = "memory"
)

// PublishSettings configures gist publishing.
type PublishSettings struct {
	GitHubToken string
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM        LLMSettings
	Generation GenerationSettings
	Validation ValidationSettings
	Storage    StorageBackend
	Publish    PublishSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; users set it up via the settings wizard.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Generation: GenerationSettings{
			Temperature:       DefaultBuildTemperature,
			MaxTokens:         DefaultMaxTokens,
			RequestsPerMinute: DefaultRequestsPerMinute,
			Timeout:           DefaultGenerationTimeout,
		},
		Validation: ValidationSettings{Mode: ValidationStructural},
		Storage:    StorageSQLite,
	}
}
