package driven

import "context"

// LLMService turns a prompt into generated text.
// This is an optional service - when nil, builds and suggestions are disabled.
//
// Implementations include:
//   - Google Gemini
//   - OpenAI
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// TopK and TopP tune sampling where the provider supports them. Zero leaves
	// the provider default.
	TopK int
	TopP float64

	// JSON asks the provider for a JSON response when it supports a response format.
	JSON bool

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
