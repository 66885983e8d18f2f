package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyGenTemperature    = "generation.temperature"
	keyGenMaxTokens      = "generation.max_tokens"
	keyGenRPM            = "generation.requests_per_minute"
	keyGenTimeout        = "generation.timeout"
	keyValidationMode    = "validation.mode"
	keyValidationBrowser = "validation.browser_bin"
	keyStorageBackend    = "storage.backend"
	keyGitHubToken       = "publish.github_token"
)

// Environment variables that fill in empty secrets.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvAPIKey      = "ARCHIE_API_KEY"
	EnvGitHubToken = "ARCHIE_GITHUB_TOKEN"
)

const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.getString(keyLLMAPIKey, s.getenv(EnvAPIKey)),
		},
		Generation: domain.GenerationSettings{
			Temperature:       s.getFloat(keyGenTemperature, defaults.Generation.Temperature),
			MaxTokens:         s.getInt(keyGenMaxTokens, defaults.Generation.MaxTokens),
			RequestsPerMinute: s.getInt(keyGenRPM, defaults.Generation.RequestsPerMinute),
			Timeout:           s.getDuration(keyGenTimeout, defaults.Generation.Timeout),
		},
		Validation: domain.ValidationSettings{
			Mode:       s.getValidationMode(defaults.Validation.Mode),
			BrowserBin: s.configStore.GetString(keyValidationBrowser),
		},
		Storage: s.getStorage(defaults.Storage),
		Publish: domain.PublishSettings{
			GitHubToken: s.getString(keyGitHubToken, s.getenv(EnvGitHubToken)),
		},
	}

	if settings.LLM.Model == "" && settings.LLM.Provider.IsValid() {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}

	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" && s.getenv(EnvAPIKey) == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	baseURL := ""
	if provider.IsLocal() {
		baseURL = s.configStore.GetString(keyLLMBaseURL)
		if baseURL == "" {
			baseURL = defaultOllamaURL
		}
	}

	return s.setAll(map[string]any{
		keyLLMProvider: provider.String(),
		keyLLMModel:    model,
		keyLLMBaseURL:  baseURL,
		keyLLMAPIKey:   apiKey,
	}, "llm")
}

// SetLLMBaseURL overrides the provider endpoint.
func (s *SettingsService) SetLLMBaseURL(url string) error {
	if err := s.configStore.Set(keyLLMBaseURL, url); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	return nil
}

// SetGeneration updates build tuning.
func (s *SettingsService) SetGeneration(gen domain.GenerationSettings) error {
	if gen.Temperature < 0 || gen.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be between 0 and 2", domain.ErrInvalidInput)
	}
	if gen.MaxTokens < 0 || gen.RequestsPerMinute < 0 || gen.Timeout < 0 {
		return fmt.Errorf("%w: generation limits must not be negative", domain.ErrInvalidInput)
	}
	return s.setAll(map[string]any{
		keyGenTemperature: gen.Temperature,
		keyGenMaxTokens:   gen.MaxTokens,
		keyGenRPM:         gen.RequestsPerMinute,
		keyGenTimeout:     gen.Timeout.String(),
	}, "generation")
}

// SetValidation selects the code validator.
func (s *SettingsService) SetValidation(v domain.ValidationSettings) error {
	if !v.Mode.IsValid() {
		return fmt.Errorf("%w: invalid validation mode: %s", domain.ErrInvalidInput, v.Mode)
	}
	return s.setAll(map[string]any{
		keyValidationMode:    string(v.Mode),
		keyValidationBrowser: v.BrowserBin,
	}, "validation")
}

// SetGitHubToken stores the token used for gist publishing.
func (s *SettingsService) SetGitHubToken(token string) error {
	if err := s.configStore.Set(keyGitHubToken, token); err != nil {
		return fmt.Errorf("save publish github_token: %w", err)
	}
	return nil
}

// Validate checks the settings are internally consistent.
// An unconfigured LLM is valid; builds are simply unavailable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if raw := s.configStore.GetString(keyLLMProvider); raw != "" && !settings.LLM.Provider.IsValid() {
		errs = append(errs, fmt.Errorf("unknown LLM provider %q", raw))
	}
	if settings.LLM.Provider.IsValid() && !settings.LLM.IsConfigured() {
		errs = append(errs, fmt.Errorf("LLM provider %q requires an API key (set %s or run 'archie settings llm')",
			settings.LLM.Provider, EnvAPIKey))
	}
	if raw := s.configStore.GetString(keyValidationMode); raw != "" && !domain.ValidationMode(raw).IsValid() {
		errs = append(errs, fmt.Errorf("unknown validation mode %q", raw))
	}
	return errors.Join(errs...)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

func (s *SettingsService) setAll(values map[string]any, group string) error {
	for key, val := range values {
		if err := s.configStore.Set(key, val); err != nil {
			return fmt.Errorf("save %s settings: %w", group, err)
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(s.configStore.GetString(key))
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(keyLLMProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getValidationMode(defaultVal domain.ValidationMode) domain.ValidationMode {
	mode := domain.ValidationMode(s.configStore.GetString(keyValidationMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getStorage(defaultVal domain.StorageBackend) domain.StorageBackend {
	switch b := domain.StorageBackend(s.configStore.GetString(keyStorageBackend)); b {
	case domain.StorageSQLite, domain.StorageMemory:
		return b
	default:
		return defaultVal
	}
}
