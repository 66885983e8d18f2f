package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/services"
)

// executeWithInput runs the root command with input on stdin.
func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	rootCmd.SetIn(strings.NewReader(input))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	out, _, err := execute(t, args...)
	return out, err
}

func TestSettingsLLM_ProviderChoice(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   string
		provider  domain.AIProvider
		model     string
		apiKey    string
		wantLabel string
	}{
		{
			name:      "default choice and model",
			input:     "\n\ngm-key-0123456789\n",
			provider:  domain.AIProviderGemini,
			model:     "gemini-2.5-flash",
			apiKey:    "gm-key-0123456789",
			wantLabel: "Google Gemini (cloud) (gemini-2.5-flash)",
		},
		{
			name:      "anthropic with custom model",
			input:     "3\nclaude-custom\nsk-ant-0123456789\n",
			provider:  domain.AIProviderAnthropic,
			model:     "claude-custom",
			apiKey:    "sk-ant-0123456789",
			wantLabel: "Anthropic (cloud) (claude-custom)",
		},
		{
			name:      "local provider skips the key",
			input:     "4\n\n",
			provider:  domain.AIProviderOllama,
			model:     "qwen2.5-coder",
			wantLabel: "Ollama (local) (qwen2.5-coder)",
		},
		{
			name:      "out of range falls back to the first provider",
			input:     "9\n\nkey-0123456789\n",
			provider:  domain.AIProviderGemini,
			model:     "gemini-2.5-flash",
			apiKey:    "key-0123456789",
			wantLabel: "Google Gemini (cloud)",
		},
		{
			name:    "cloud provider without key",
			input:   "2\n\n\n",
			wantErr: "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			out, err := executeWithInput(t, tt.input, "settings", "llm")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "LLM provider configured: "+tt.wantLabel)

			s, err := settingsService.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, s.LLM.Provider)
			assert.Equal(t, tt.model, s.LLM.Model)
			assert.Equal(t, tt.apiKey, s.LLM.APIKey)
			assert.True(t, s.LLM.IsConfigured())
		})
	}
}

func TestSettingsValidation_ModeChoice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mode    domain.ValidationMode
		browser string
	}{
		{"default is structural", "\n", domain.ValidationStructural, ""},
		{"browser with binary", "2\n/usr/bin/chromium\n", domain.ValidationBrowser, "/usr/bin/chromium"},
		{"browser with auto download", "2\n\n", domain.ValidationBrowser, ""},
		{"garbage keeps structural", "browser\n", domain.ValidationStructural, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			out, err := executeWithInput(t, tt.input, "settings", "validation")
			require.NoError(t, err)
			assert.Contains(t, out, "Validation mode set to: "+tt.mode.Description())

			s, err := settingsService.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.mode, s.Validation.Mode)
			assert.Equal(t, tt.browser, s.Validation.BrowserBin)
		})
	}
}

func TestSettingsShow_EnvKeyOverride(t *testing.T) {
	setupTestServices(t)
	t.Setenv(services.EnvAPIKey, "env-key-abcdefgh1234")
	t.Setenv(services.EnvGitHubToken, "ghp_fromenv_5678")
	require.NoError(t, settingsService.SetLLMProvider(domain.AIProviderOpenAI, "", ""))

	out := mustExecute(t, "settings", "show")

	assert.Contains(t, out, "Provider: OpenAI (cloud)")
	assert.Contains(t, out, "Model: gpt-4o-mini")
	assert.Contains(t, out, "API Key: env-...1234")
	assert.Contains(t, out, "Status: configured")
	assert.Contains(t, out, "GitHub token: ghp_...5678")
	assert.Contains(t, out, "Configuration is valid.")
	assert.NotContains(t, out, "env-key-abcdefgh1234")
}

func TestSettingsShow_MissingKeyWarns(t *testing.T) {
	setupTestServices(t)
	t.Setenv(services.EnvAPIKey, "env-key-abcdefgh1234")
	require.NoError(t, settingsService.SetLLMProvider(domain.AIProviderAnthropic, "", ""))
	t.Setenv(services.EnvAPIKey, "")

	out := mustExecute(t, "settings", "show")

	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "not configured (builds and suggestions disabled)")
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, services.EnvAPIKey)
}

func TestSettingsGeneration_Interactive(t *testing.T) {
	setupTestServices(t)

	out, err := executeWithInput(t, "0.5\n\n20\n30s\n", "settings", "generation")

	require.NoError(t, err)
	assert.Contains(t, out, "temperature 0.5")
	s, err := settingsService.Get()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Generation.Temperature, 1e-9)
	assert.Equal(t, domain.DefaultMaxTokens, s.Generation.MaxTokens)
	assert.Equal(t, 20, s.Generation.RequestsPerMinute)
	assert.Equal(t, 30*time.Second, s.Generation.Timeout)
}

func TestSettingsGeneration_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"temperature", "warm\n", `invalid temperature "warm"`},
		{"max tokens", "\nlots\n", `invalid max tokens "lots"`},
		{"timeout", "\n\n\nsoon\n", `invalid timeout "soon"`},
		{"out of range temperature", "3\n\n\n\n", "temperature must be between 0 and 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, err := executeWithInput(t, tt.input, "settings", "generation")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettingsPublish(t *testing.T) {
	setupTestServices(t)

	out, err := executeWithInput(t, "ghp_abcdefgh12345678\n", "settings", "publish")
	require.NoError(t, err)
	assert.Contains(t, out, "GitHub token saved: ghp_...5678")
	s, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "ghp_abcdefgh12345678", s.Publish.GitHubToken)

	out = mustExecute(t, "settings", "publish", "--clear")
	assert.Contains(t, out, "GitHub token removed.")
	s, err = settingsService.Get()
	require.NoError(t, err)
	assert.Empty(t, s.Publish.GitHubToken)

	_, err = executeWithInput(t, "\n", "settings", "publish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--clear")
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "****"},
		{"12345678", "****"},
		{"gm-key-0123456789", "gm-k...6789"},
		{"ghp_abcdefgh12345678", "ghp_...5678"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestParseChoice(t *testing.T) {
	providers := len(domain.AllLLMProviders())
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty keeps default", "", 1},
		{"whitespace keeps default", "  ", 1},
		{"last provider", "4", providers},
		{"padded choice", " 2 ", 2},
		{"zero", "0", 1},
		{"past the end", "5", 1},
		{"negative", "-1", 1},
		{"provider name is not a choice", "gemini", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, providers, 1))
		})
	}
}
