package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// PayloadHandle is a transient resource holding one document's payload.
// Release must be called exactly once; later calls return
// domain.ErrHandleReleased.
type PayloadHandle interface {
	// DocumentID is the document the payload belongs to.
	DocumentID() string

	// Path is where the payload can be read while the handle is live.
	Path() string

	// MediaType is the Content-Type reported by the server.
	MediaType() string

	// Release frees the resource.
	Release() error
}

// PayloadStore creates payload handles.
type PayloadStore interface {
	// Acquire copies r into a new handle for documentID.
	Acquire(ctx context.Context, documentID, mediaType string, r io.Reader) (PayloadHandle, error)
}

// PageDecoder turns a payload into renderable pages.
type PageDecoder interface {
	// Decode returns the pages in order. A payload without pages
	// returns domain.ErrEmptyPayload.
	Decode(ctx context.Context, h PayloadHandle) ([]domain.RenderedPage, error)
}
