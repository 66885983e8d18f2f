package mcp

import (
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Drafts stores component descriptions.
	Drafts driving.DraftService

	// Builds generates and validates code. Optional; without it the build
	// and validate tools report that they are unavailable.
	Builds driving.BuildService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Drafts == nil {
		return ErrMissingDraftService
	}
	return nil
}
