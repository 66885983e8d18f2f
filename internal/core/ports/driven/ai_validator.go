package driven

import "github.com/custodia-labs/archie/internal/core/domain"

// AIConfigValidator validates LLM provider configurations by testing
// connectivity to the provider.
type AIConfigValidator interface {
	// ValidateLLM pings the configured provider.
	// Returns nil if configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
