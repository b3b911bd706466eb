package mcp

import (
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point.
type Ports struct {
	// Search provides retrieval and course outlines.
	Search driving.SearchService

	// Ask answers questions through the agent loop. Optional; without
	// it only retrieval tools are exposed.
	Ask driving.AskService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
