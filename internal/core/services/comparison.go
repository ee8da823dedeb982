package services

import (
	"context"
	"net/http"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
)

// Ensure ComparisonService implements the interface.
var _ driving.ComparisonService = (*ComparisonService)(nil)

// ComparisonService requests compliance comparisons.
type ComparisonService struct {
	gateway driven.RequestGateway
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(gateway driven.RequestGateway) *ComparisonService {
	return &ComparisonService{gateway: gateway}
}

// Compare issues exactly one request for the pair.
func (s *ComparisonService) Compare(ctx context.Context, sourceID, targetID string) (*domain.ComparisonResult, error) {
	if s.gateway == nil {
		return nil, domain.ErrNotImplemented
	}
	if sourceID == "" {
		return nil, domain.ErrNoDocument
	}
	if targetID == "" {
		return nil, domain.ErrNoTarget
	}
	if sourceID == targetID {
		return nil, domain.ErrSameDocument
	}
	resp, err := s.gateway.Send(ctx, driven.Request{
		Method: http.MethodPost,
		Path:   "/documents/compare",
		Body:   compareRequestDTO{SourceDocumentID: sourceID, TargetDocumentID: targetID},
	})
	if err != nil {
		return nil, err
	}
	dto, err := decodeJSON[comparisonDTO](resp.Body, "comparison")
	if err != nil {
		return nil, err
	}
	result := dto.toDomain()
	return &result, nil
}
