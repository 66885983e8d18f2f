package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/archie/internal/core/domain"
)

type stubAIValidator struct {
	err    error
	called *domain.LLMSettings
}

func (v *stubAIValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	v.called = cfg
	return v.err
}

func newTestSettings(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store, nil)
	svc.getenv = func(k string) string { return env[k] }
	return svc, store
}

func TestSettingsService_GetDefaults(t *testing.T) {
	svc, _ := newTestSettings(nil)

	got, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultAppSettings(), *got)
	assert.False(t, got.LLM.IsConfigured())
	assert.Equal(t, domain.DefaultAppSettings(), svc.GetDefaults())
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	tests := []struct {
		name        string
		provider    domain.AIProvider
		model       string
		apiKey      string
		env         map[string]string
		wantErr     error
		wantModel   string
		wantBaseURL string
	}{
		{
			name:      "cloud provider with key and default model",
			provider:  domain.AIProviderGemini,
			apiKey:    "key",
			wantModel: "gemini-2.5-flash",
		},
		{
			name:      "explicit model",
			provider:  domain.AIProviderOpenAI,
			model:     "gpt-4o",
			apiKey:    "key",
			wantModel: "gpt-4o",
		},
		{
			name:        "local provider gets default url",
			provider:    domain.AIProviderOllama,
			wantModel:   "qwen2.5-coder",
			wantBaseURL: "http://localhost:11434",
		},
		{
			name:      "key from environment",
			provider:  domain.AIProviderAnthropic,
			env:       map[string]string{EnvAPIKey: "env-key"},
			wantModel: "claude-3-5-sonnet-latest",
		},
		{
			name:     "missing key",
			provider: domain.AIProviderAnthropic,
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "unknown provider",
			provider: domain.AIProvider("bard"),
			wantErr:  domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestSettings(tt.env)

			err := svc.SetLLMProvider(tt.provider, tt.model, tt.apiKey)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := svc.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, got.LLM.Provider)
			assert.Equal(t, tt.wantModel, got.LLM.Model)
			assert.Equal(t, tt.wantBaseURL, got.LLM.BaseURL)
			assert.True(t, got.LLM.IsConfigured())
		})
	}
}

func TestSettingsService_OllamaKeepsCustomBaseURL(t *testing.T) {
	svc, _ := newTestSettings(nil)

	require.NoError(t, svc.SetLLMBaseURL("http://gpu-box:11434"))
	require.NoError(t, svc.SetLLMProvider(domain.AIProviderOllama, "", ""))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "http://gpu-box:11434", got.LLM.BaseURL)
}

func TestSettingsService_SetGeneration(t *testing.T) {
	svc, _ := newTestSettings(nil)

	gen := domain.GenerationSettings{Temperature: 0.3, MaxTokens: 4096, RequestsPerMinute: 0, Timeout: 30 * time.Second}
	require.NoError(t, svc.SetGeneration(gen))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, gen, got.Generation)

	assert.ErrorIs(t, svc.SetGeneration(domain.GenerationSettings{Temperature: 3}), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.SetGeneration(domain.GenerationSettings{MaxTokens: -1}), domain.ErrInvalidInput)
}

func TestSettingsService_SetValidation(t *testing.T) {
	svc, _ := newTestSettings(nil)

	require.NoError(t, svc.SetValidation(domain.ValidationSettings{Mode: domain.ValidationBrowser, BrowserBin: "/usr/bin/chromium"}))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationBrowser, got.Validation.Mode)
	assert.Equal(t, "/usr/bin/chromium", got.Validation.BrowserBin)

	assert.ErrorIs(t, svc.SetValidation(domain.ValidationSettings{Mode: "lint"}), domain.ErrInvalidInput)
}

func TestSettingsService_GitHubToken(t *testing.T) {
	svc, _ := newTestSettings(map[string]string{EnvGitHubToken: "from-env"})

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "from-env", got.Publish.GitHubToken)

	require.NoError(t, svc.SetGitHubToken("stored"))
	got, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "stored", got.Publish.GitHubToken)
}

func TestSettingsService_StorageBackend(t *testing.T) {
	svc, store := newTestSettings(nil)

	require.NoError(t, store.Set(keyStorageBackend, "memory"))
	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageMemory, got.Storage)

	require.NoError(t, store.Set(keyStorageBackend, "postgres"))
	got, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageSQLite, got.Storage)
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr string
	}{
		{name: "empty config is valid"},
		{
			name:   "configured local provider",
			values: map[string]any{keyLLMProvider: "ollama"},
		},
		{
			name:    "unknown provider",
			values:  map[string]any{keyLLMProvider: "bard"},
			wantErr: `unknown LLM provider "bard"`,
		},
		{
			name:    "cloud provider without key",
			values:  map[string]any{keyLLMProvider: "openai"},
			wantErr: "requires an API key",
		},
		{
			name:    "unknown validation mode",
			values:  map[string]any{keyValidationMode: "lint"},
			wantErr: `unknown validation mode "lint"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestSettings(nil)
			for k, v := range tt.values {
				require.NoError(t, store.Set(k, v))
			}

			err := svc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettingsService_ValidateLLMConfig(t *testing.T) {
	t.Run("nil validator", func(t *testing.T) {
		svc, _ := newTestSettings(nil)
		assert.NoError(t, svc.ValidateLLMConfig())
	})

	t.Run("passes current settings", func(t *testing.T) {
		store := memory.NewConfigStore()
		validator := &stubAIValidator{err: errors.New("unreachable")}
		svc := NewSettingsService(store, validator)
		require.NoError(t, svc.SetLLMProvider(domain.AIProviderOllama, "llama3", ""))

		err := svc.ValidateLLMConfig()

		assert.EqualError(t, err, "unreachable")
		require.NotNil(t, validator.called)
		assert.Equal(t, "llama3", validator.called.Model)
	})
}
