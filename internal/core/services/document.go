package services

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService fetches and uploads documents through the gateway.
type DocumentService struct {
	gateway driven.RequestGateway
}

// NewDocumentService creates a new document service.
func NewDocumentService(gateway driven.RequestGateway) *DocumentService {
	return &DocumentService{gateway: gateway}
}

// List returns all documents in the order the server sent them.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if s.gateway == nil {
		return nil, domain.ErrNotImplemented
	}
	resp, err := s.gateway.Send(ctx, driven.Request{Method: http.MethodGet, Path: "/documents"})
	if err != nil {
		return nil, err
	}
	list, err := decodeJSON[documentListDTO](resp.Body, "document list")
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, len(list))
	for i := range list {
		docs[i] = list[i].toDomain()
	}
	return docs, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.gateway == nil {
		return nil, domain.ErrNotImplemented
	}
	if documentID == "" {
		return nil, domain.ErrInvalidInput
	}
	resp, err := s.gateway.Send(ctx, driven.Request{
		Method: http.MethodGet,
		Path:   "/documents/" + url.PathEscape(documentID),
	})
	if err != nil {
		return nil, err
	}
	dto, err := decodeJSON[documentDTO](resp.Body, "document")
	if err != nil {
		return nil, err
	}
	doc := dto.toDomain()
	return &doc, nil
}

// Upload sends one file as the multipart field "file".
func (s *DocumentService) Upload(ctx context.Context, file domain.UploadFile) (*domain.Document, error) {
	if s.gateway == nil {
		return nil, domain.ErrNotImplemented
	}
	if file.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	logger.Debug("uploading %s (%s)", file.Name, file.SizeLabel())
	resp, err := s.gateway.Send(ctx, driven.Request{
		Method: http.MethodPost,
		Path:   "/documents/upload",
		File:   &file,
	})
	if err != nil {
		return nil, err
	}
	dto, err := decodeJSON[documentDTO](resp.Body, "uploaded document")
	if err != nil {
		return nil, err
	}
	doc := dto.toDomain()
	return &doc, nil
}

// DownloadBinary opens the raw payload and reports its media type.
func (s *DocumentService) DownloadBinary(ctx context.Context, documentID string) (io.ReadCloser, string, error) {
	if s.gateway == nil {
		return nil, "", domain.ErrNotImplemented
	}
	if documentID == "" {
		return nil, "", domain.ErrInvalidInput
	}
	resp, err := s.gateway.Send(ctx, driven.Request{
		Method: http.MethodGet,
		Path:   "/documents/" + url.PathEscape(documentID) + "/download",
		Kind:   driven.ResponseBinary,
	})
	if err != nil {
		return nil, "", err
	}
	return resp.Stream, resp.Header.Get("Content-Type"), nil
}
