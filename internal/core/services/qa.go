package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
)

// Ensure QAService implements the interface.
var _ driving.QAService = (*QAService)(nil)

// QAService loads and extends document conversations.
type QAService struct {
	gateway driven.RequestGateway
}

// NewQAService creates a new question answering service.
func NewQAService(gateway driven.RequestGateway) *QAService {
	return &QAService{gateway: gateway}
}

func qaPath(documentID string) string {
	return "/qa/documents/" + url.PathEscape(documentID)
}

// History returns the stored turns for a document, oldest first.
func (s *QAService) History(ctx context.Context, documentID string) ([]domain.ChatTurn, error) {
	if s.gateway == nil {
		return nil, domain.ErrNotImplemented
	}
	if documentID == "" {
		return nil, domain.ErrNoDocument
	}
	resp, err := s.gateway.Send(ctx, driven.Request{Method: http.MethodGet, Path: qaPath(documentID)})
	if err != nil {
		return nil, err
	}
	history, err := decodeJSON[chatHistoryDTO](resp.Body, "chat history")
	if err != nil {
		return nil, err
	}
	return history.toDomain(), nil
}

// Ask submits a question. Blank questions never reach the network.
func (s *QAService) Ask(ctx context.Context, documentID, question string) (string, error) {
	if err := domain.ValidateQuestion(question); err != nil {
		return "", err
	}
	if s.gateway == nil {
		return "", domain.ErrNotImplemented
	}
	if documentID == "" {
		return "", domain.ErrNoDocument
	}
	resp, err := s.gateway.Send(ctx, driven.Request{
		Method: http.MethodPost,
		Path:   qaPath(documentID),
		Body:   askRequestDTO{Question: question},
	})
	if err != nil {
		return "", err
	}
	answer, err := decodeJSON[answerDTO](resp.Body, "answer")
	if err != nil {
		return "", err
	}
	return *answer.Answer, nil
}
