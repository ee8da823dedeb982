package driven

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// PostProcessor reshapes decoded pages before display.
// PostProcessors are chained in a pipeline (e.g., tidying, pagination).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the reshaped pages, numbered from 1.
	Process(ctx context.Context, pages []domain.RenderedPage) ([]domain.RenderedPage, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the pages through all processors in order.
	Process(ctx context.Context, pages []domain.RenderedPage) ([]domain.RenderedPage, error)
}
