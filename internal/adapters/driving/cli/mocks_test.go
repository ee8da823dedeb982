package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
)

// MockDocumentService implements driving.DocumentService for CLI tests.
type MockDocumentService struct {
	ListFunc     func(ctx context.Context) ([]domain.Document, error)
	GetFunc      func(ctx context.Context, id string) (*domain.Document, error)
	UploadFunc   func(ctx context.Context, file domain.UploadFile) (*domain.Document, error)
	DownloadFunc func(ctx context.Context, id string) (io.ReadCloser, string, error)
}

func (m *MockDocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return testDocuments(), nil
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	for _, d := range testDocuments() {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) Upload(ctx context.Context, file domain.UploadFile) (*domain.Document, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, file)
	}
	return &domain.Document{ID: "new-" + file.Name, Filename: file.Name, Size: int64(len(file.Content))}, nil
}

func (m *MockDocumentService) DownloadBinary(ctx context.Context, id string) (io.ReadCloser, string, error) {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, id)
	}
	return io.NopCloser(strings.NewReader("%PDF " + id)), "application/pdf", nil
}

// MockComparisonService implements driving.ComparisonService for CLI tests.
type MockComparisonService struct {
	CompareFunc func(ctx context.Context, src, tgt string) (*domain.ComparisonResult, error)
}

func (m *MockComparisonService) Compare(ctx context.Context, src, tgt string) (*domain.ComparisonResult, error) {
	if m.CompareFunc != nil {
		return m.CompareFunc(ctx, src, tgt)
	}
	if src == tgt {
		return nil, domain.ErrSameDocument
	}
	return &domain.ComparisonResult{
		SourceDocumentID: src,
		TargetDocumentID: tgt,
		ComplianceScore:  0.5,
		Summary:          domain.ComparisonSummary{Compliant: 1, NonCompliant: 1},
		Evaluations: []domain.Evaluation{
			{Requirement: "Dust control", Status: domain.StatusCompliant, Rationale: "Section 4 covers it."},
			{Requirement: "Water reporting", Status: domain.StatusNonCompliant, Evidence: []string{"No reporting schedule"}},
		},
	}, nil
}

// MockQAService implements driving.QAService for CLI tests.
type MockQAService struct {
	HistoryFunc func(ctx context.Context, id string) ([]domain.ChatTurn, error)
	AskFunc     func(ctx context.Context, id, q string) (string, error)
}

func (m *MockQAService) History(ctx context.Context, id string) ([]domain.ChatTurn, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockQAService) Ask(ctx context.Context, id, q string) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, id, q)
	}
	return "answer: " + q, nil
}

// MockAuthService implements driving.AuthService for CLI tests.
type MockAuthService struct {
	LoginFunc func(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)
	account   string
	logouts   int
	requests  []domain.LoginRequest
}

func (m *MockAuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	m.requests = append(m.requests, req)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	m.account = req.Email
	return &domain.Session{Token: "tok", User: req.Email}, nil
}

func (m *MockAuthService) Logout() error {
	m.logouts++
	m.account = ""
	return nil
}

func (m *MockAuthService) Account() string     { return m.account }
func (m *MockAuthService) Authenticated() bool { return m.account != "" }

type mockHandle struct{ id string }

func (h *mockHandle) DocumentID() string { return h.id }
func (h *mockHandle) Path() string       { return "" }
func (h *mockHandle) MediaType() string  { return "application/pdf" }
func (h *mockHandle) Release() error     { return nil }

// MockPayloadStore implements driven.PayloadStore without touching disk.
type MockPayloadStore struct{}

func (MockPayloadStore) Acquire(_ context.Context, id, _ string, r io.Reader) (driven.PayloadHandle, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	return &mockHandle{id: id}, nil
}

// closingPayloadStore counts Close calls.
type closingPayloadStore struct {
	MockPayloadStore
	closed int
}

func (s *closingPayloadStore) Close() error {
	s.closed++
	return nil
}

// MockPageDecoder implements driven.PageDecoder with fixed pages.
type MockPageDecoder struct {
	DecodeFunc func(ctx context.Context, h driven.PayloadHandle) ([]domain.RenderedPage, error)
}

func (m *MockPageDecoder) Decode(ctx context.Context, h driven.PayloadHandle) ([]domain.RenderedPage, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(ctx, h)
	}
	return []domain.RenderedPage{
		{Number: 1, Text: "page one of " + h.DocumentID()},
		{Number: 2, Text: "page two of " + h.DocumentID()},
	}, nil
}

func testDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:        "doc-1",
			Title:     "Mine Operating Plan",
			Filename:  "plan.pdf",
			Size:      2048,
			CreatedAt: time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
			Analysis: &domain.Analysis{
				Summary:   "Operating plan for the north pit.",
				KeyPoints: []string{"Blasting hours are limited", "Dust is monitored weekly"},
			},
		},
		{ID: "doc-2", Title: "Environmental Regulation", Size: 1024},
	}
}

// testServices is the set installed by setupTestServices.
type testServices struct {
	docs *MockDocumentService
	cmp  *MockComparisonService
	qa   *MockQAService
	auth *MockAuthService
}

// setupTestServices installs mock services and resets command state.
// The returned function restores the previous services.
func setupTestServices() func() {
	_, cleanup := setupTestServicesWith()
	return cleanup
}

func setupTestServicesWith() (*testServices, func()) {
	ts := &testServices{
		docs: &MockDocumentService{},
		cmp:  &MockComparisonService{},
		qa:   &MockQAService{},
		auth: &MockAuthService{account: "ada@example.com"},
	}

	prevServices, prevBootstrap := services, bootstrap
	services = &Services{
		Documents:   ts.docs,
		Comparisons: ts.cmp,
		QA:          ts.qa,
		Auth:        ts.auth,
		Payloads:    MockPayloadStore{},
		Decoder:     &MockPageDecoder{},
	}
	bootstrap = nil
	resetFlags()

	return ts, func() {
		services, bootstrap = prevServices, prevBootstrap
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

func resetFlags() {
	showPage = 1
	showFullSummary = false
	downloadOutput = ""
	loginEmail = ""
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
