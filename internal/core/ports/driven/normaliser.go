package driven

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// Normaliser turns a payload of one format into readable text.
// Each normaliser handles specific MIME types (e.g., PDF, Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	// A type ending in "/*" matches the whole family.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format normalisers return 50; fallbacks return 1-9.
	Priority() int

	// Normalise extracts the payload's text.
	Normalise(ctx context.Context, raw *domain.RawPayload) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Splitting into display pages is handled by the PostProcessor pipeline.
type NormaliseResult struct {
	// Text is the extracted text. Form feeds separate pages for formats
	// that carry pagination.
	Text string
}
