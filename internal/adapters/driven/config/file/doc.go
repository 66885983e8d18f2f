// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: User-editable prompt templates with embedded defaults
//   - ReadDraft/WriteDraft: JSON and YAML draft files for import and export
package file
