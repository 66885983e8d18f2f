// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ConfigStore: Application configuration
//   - PromptStore: Build and suggestion prompt templates
//   - DraftStore: Draft persistence
//   - BuildStore: Build history persistence
//   - CodeValidator: Checks generated source before preview
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Text generation. Without it, builds and suggestions are disabled
//     but editing and prompt rendering work as normal.
//   - Publisher: Uploads builds. Without it, publishing is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
