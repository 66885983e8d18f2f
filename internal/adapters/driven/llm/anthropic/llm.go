// Package anthropic provides an LLM service adapter using the Anthropic API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.anthropic.com/v1"
	DefaultModel     = "claude-3-5-sonnet-latest"
	DefaultTimeout   = 120 * time.Second
	defaultMaxTokens = 1024
)

// Config holds configuration for the Anthropic LLM service.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.anthropic.com/v1).
	BaseURL string

	// Model is the LLM model to use (default: claude-3-5-sonnet-latest).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService generates text through the messages endpoint.
type LLMService struct {
	client *anthropic.Client
	model  string
}

// NewLLMService creates a new Anthropic LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := anthropic.NewClient(cfg.APIKey,
		anthropic.WithBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")),
		anthropic.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	return &LLMService{client: client, model: cfg.Model}, nil
}

// Generate produces text completion from a prompt.
// The messages API has no JSON mode; opts.JSON relies on the prompt alone.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	// max_tokens is mandatory for this API.
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	req := anthropic.MessagesRequest{
		Model:         anthropic.Model(s.model),
		Messages:      []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
		MaxTokens:     maxTokens,
		StopSequences: opts.StopWords,
	}
	if opts.Temperature > 0 {
		t := float32(opts.Temperature)
		req.Temperature = &t
	}
	if opts.TopP > 0 {
		p := float32(opts.TopP)
		req.TopP = &p
	}
	if opts.TopK > 0 {
		k := opts.TopK
		req.TopK = &k
	}

	resp, err := s.client.CreateMessages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", describe(err))
	}

	var out strings.Builder
	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText {
			out.WriteString(c.GetText())
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("anthropic: no text content returned")
	}
	return out.String(), nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping sends a one token request to check the key and model.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(s.model),
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage("ping")},
		MaxTokens: 1,
	})
	if err != nil {
		return fmt.Errorf("anthropic: ping failed: %w", describe(err))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}

func describe(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.Type, apiErr.Message)
	}
	return err
}
