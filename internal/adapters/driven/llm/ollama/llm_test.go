package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

func TestNewLLMService_Defaults(t *testing.T) {
	svc := NewLLMService(LLMConfig{})

	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.NoError(t, svc.Close())
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name        string
		opts        driven.GenerateOptions
		wantFormat  string
		wantOptions bool
	}{
		{"plain", driven.GenerateOptions{}, "", false},
		{"json with sampling", driven.GenerateOptions{JSON: true, Temperature: 0.5, TopK: 32, TopP: 1}, "json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got generateRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/generate", r.URL.Path)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				_, _ = w.Write([]byte(`{"response":"hello","done":true}`))
			}))
			defer srv.Close()

			svc := NewLLMService(LLMConfig{BaseURL: srv.URL, Model: "m"})
			out, err := svc.Generate(context.Background(), "prompt", tt.opts)

			require.NoError(t, err)
			assert.Equal(t, "hello", out)
			assert.Equal(t, "m", got.Model)
			assert.False(t, got.Stream)
			assert.Equal(t, tt.wantFormat, got.Format)
			if tt.wantOptions {
				require.NotNil(t, got.Options)
				assert.Equal(t, 32, got.Options.TopK)
			} else {
				assert.Nil(t, got.Options)
			}
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"status", http.StatusNotFound, `model "m" not found`, "status 404"},
		{"error field", http.StatusOK, `{"error":"out of memory"}`, "out of memory"},
		{"bad json", http.StatusOK, `{`, "decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewLLMService(LLMConfig{BaseURL: srv.URL}).Generate(context.Background(), "p", driven.GenerateOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewLLMService(LLMConfig{BaseURL: srv.URL}).Ping(context.Background()))

	srv.Close()
	assert.Error(t, NewLLMService(LLMConfig{BaseURL: srv.URL}).Ping(context.Background()))
}
