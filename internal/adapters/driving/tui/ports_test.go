package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	ListFunc func(ctx context.Context) ([]domain.Document, error)
	GetFunc  func(ctx context.Context, id string) (*domain.Document, error)
}

func (m *MockDocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Document{ID: id, Title: "Doc " + id}, nil
}

func (m *MockDocumentService) Upload(_ context.Context, file domain.UploadFile) (*domain.Document, error) {
	return &domain.Document{ID: "id-" + file.Name}, nil
}

func (m *MockDocumentService) DownloadBinary(_ context.Context, id string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader(id)), "application/pdf", nil
}

// MockAuthService implements driving.AuthService for testing.
type MockAuthService struct {
	LoginFunc     func(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)
	authenticated bool
	account       string
}

func (m *MockAuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	m.authenticated = true
	m.account = req.Email
	return &domain.Session{Token: "tok", User: req.Email}, nil
}

func (m *MockAuthService) Logout() error {
	m.authenticated = false
	m.account = ""
	return nil
}

func (m *MockAuthService) Account() string     { return m.account }
func (m *MockAuthService) Authenticated() bool { return m.authenticated }

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name:  "all required ports set",
			ports: &Ports{Documents: &MockDocumentService{}, Auth: &MockAuthService{}},
		},
		{
			name:    "missing document service",
			ports:   &Ports{Auth: &MockAuthService{}},
			wantErr: ErrMissingDocumentService,
		},
		{
			name:    "missing auth service",
			ports:   &Ports{Documents: &MockDocumentService{}},
			wantErr: ErrMissingAuthService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
