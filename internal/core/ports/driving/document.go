package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// DocumentService fetches, lists and uploads documents. It owns no UI state.
type DocumentService interface {
	// List returns all documents visible to the caller in server order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if the ID is unknown.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Upload sends one file and returns the created document.
	// Callers prepend the result to their list instead of re-listing.
	Upload(ctx context.Context, file domain.UploadFile) (*domain.Document, error)

	// DownloadBinary opens the document's raw payload.
	// The caller must close the returned reader.
	DownloadBinary(ctx context.Context, documentID string) (io.ReadCloser, string, error)
}
