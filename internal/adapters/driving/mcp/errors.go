// Package mcp provides an MCP (Model Context Protocol) server adapter for archie.
// It lets AI assistants read drafts, edit them and render or build components.
package mcp

import "errors"

// ErrMissingDraftService is returned when the draft service is not provided.
var ErrMissingDraftService = errors.New("mcp: draft service is required")
