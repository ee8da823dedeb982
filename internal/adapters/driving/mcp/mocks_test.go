package mcp

import (
	"context"
	"io"
	"strings"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	err       error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Upload(_ context.Context, f domain.UploadFile) (*domain.Document, error) {
	return &domain.Document{ID: "new", Filename: f.Name}, m.err
}

func (m *mockDocumentService) DownloadBinary(_ context.Context, _ string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("")), "application/pdf", m.err
}

// mockComparisonService is a mock implementation of driving.ComparisonService.
type mockComparisonService struct {
	result *domain.ComparisonResult
	err    error
}

func (m *mockComparisonService) Compare(_ context.Context, _, _ string) (*domain.ComparisonResult, error) {
	return m.result, m.err
}

// mockQAService is a mock implementation of driving.QAService.
type mockQAService struct {
	turns  []domain.ChatTurn
	answer string
	err    error
}

func (m *mockQAService) History(_ context.Context, _ string) ([]domain.ChatTurn, error) {
	return m.turns, m.err
}

func (m *mockQAService) Ask(_ context.Context, _, _ string) (string, error) {
	return m.answer, m.err
}
