package mcp

import (
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Documents lists and fetches documents.
	Documents driving.DocumentService

	// Comparisons evaluates a document against a reference.
	Comparisons driving.ComparisonService

	// QA answers questions grounded in a document.
	QA driving.QAService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	// Comparisons and QA are optional; their tools report ErrNotImplemented.
	return nil
}
