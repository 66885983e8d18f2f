package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/adapters/driven/llm/instrumented"
	"github.com/custodia-labs/archie/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantNil   bool
		wantModel string
	}{
		{"nil settings", nil, true, ""},
		{"unconfigured", &domain.LLMSettings{}, true, ""},
		{"missing key", &domain.LLMSettings{Provider: domain.AIProviderOpenAI}, true, ""},
		{"unknown provider", &domain.LLMSettings{Provider: "mystery", APIKey: "k"}, true, ""},
		{"gemini", &domain.LLMSettings{Provider: domain.AIProviderGemini, APIKey: "k", Model: "gemini-x"}, false, "gemini-x"},
		{"openai", &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k"}, false, "gpt-4o-mini"},
		{"anthropic", &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k", Model: "claude-x"}, false, "claude-x"},
		{"ollama", &domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama"}, false, "llama"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.NoError(t, svc.Close())
		})
	}
}

func TestCreateAndValidateLLMService_Unreachable(t *testing.T) {
	svc, err := CreateAndValidateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://127.0.0.1:1",
	})

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, err.Error(), "archie settings llm")
}

func TestInit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	t.Run("reachable and instrumented", func(t *testing.T) {
		m := instrumented.NewMetrics(prometheus.NewRegistry())
		res := Init(&domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: srv.URL, Model: "m"}, m)
		defer res.Close()

		require.NotNil(t, res.LLMService)
		assert.IsType(t, &instrumented.LLMService{}, res.LLMService)
		assert.False(t, res.FellBack)
		assert.Empty(t, res.Warnings)
	})

	t.Run("unreachable falls back", func(t *testing.T) {
		res := Init(&domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: "http://127.0.0.1:1"}, nil)

		assert.Nil(t, res.LLMService)
		assert.True(t, res.FellBack)
		require.Len(t, res.Warnings, 1)
		res.Close()
	})

	t.Run("not configured", func(t *testing.T) {
		res := Init(nil, nil)

		assert.Nil(t, res.LLMService)
		assert.False(t, res.FellBack)
	})
}
