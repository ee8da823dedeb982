package driven

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a payload.
// It maintains a priority-ordered list of normalisers and dispatches
// on MIME type.
type NormaliserRegistry interface {
	// Normalise transforms a payload using the best matching normaliser.
	Normalise(ctx context.Context, raw *domain.RawPayload) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
