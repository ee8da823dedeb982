// Package tui provides an interactive terminal user interface for MineGuard.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Documents lists, fetches, uploads and downloads documents.
	Documents driving.DocumentService

	// Comparisons runs compliance comparisons.
	Comparisons driving.ComparisonService

	// QA answers questions grounded in a document.
	QA driving.QAService

	// Auth signs the user in and out.
	Auth driving.AuthService

	// Payloads holds downloaded document payloads while they are viewed.
	Payloads driven.PayloadStore

	// Decoder turns payloads into pages.
	Decoder driven.PageDecoder

	// Suggestions provides prompts for an empty chat.
	Suggestions driven.SuggestionStore

	// WatchCredentials reports credential changes made by other processes.
	// Optional.
	WatchCredentials func(ctx context.Context) (<-chan struct{}, error)
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	return nil
}
