package driving

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// QAService answers questions grounded in a document.
type QAService interface {
	// History returns the stored conversation for a document.
	History(ctx context.Context, documentID string) ([]domain.ChatTurn, error)

	// Ask submits a question and returns the answer.
	// Empty questions fail with domain.ErrEmptyQuestion without a request.
	Ask(ctx context.Context, documentID, question string) (string, error)
}
