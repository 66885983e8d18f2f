package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider(t *testing.T) {
	tests := []struct {
		provider AIProvider
		valid    bool
		apiKey   bool
		local    bool
	}{
		{AIProviderOllama, true, false, true},
		{AIProviderOpenAI, true, true, false},
		{AIProviderAnthropic, true, true, false},
		{AIProviderGemini, true, true, false},
		{AIProvider("mistral"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.provider.IsValid())
			assert.Equal(t, tt.apiKey, tt.provider.RequiresAPIKey())
			assert.Equal(t, tt.local, tt.provider.IsLocal())
		})
	}
}

func TestDefaultLLMModels_CoverAllProviders(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], p)
		assert.NotEqual(t, unknownDescription, p.Description())
	}
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.False(t, LLMSettings{}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, LLMSettings{Provider: AIProviderGemini}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderGemini, APIKey: "k"}.IsConfigured())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.InDelta(t, 0.1, s.Generation.Temperature, 1e-9)
	assert.Equal(t, DefaultMaxTokens, s.Generation.MaxTokens)
	assert.Equal(t, ValidationStructural, s.Validation.Mode)
	assert.Equal(t, StorageSQLite, s.Storage)
	assert.False(t, s.LLM.IsConfigured())
}

func TestSuggestionTarget(t *testing.T) {
	for _, target := range AllSuggestionTargets() {
		got, err := ParseSuggestionTarget(string(target))
		assert.NoError(t, err)
		assert.Equal(t, target, got)
	}
	assert.True(t, SuggestStyling.IsFieldHint())
	assert.False(t, SuggestProps.IsFieldHint())

	_, err := ParseSuggestionTarget("colour")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
