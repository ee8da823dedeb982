package driving

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// ComparisonService requests compliance comparisons between documents.
type ComparisonService interface {
	// Compare evaluates the source document against the target's
	// requirements. Returns domain.ErrSameDocument when the IDs match.
	Compare(ctx context.Context, sourceID, targetID string) (*domain.ComparisonResult, error)
}
