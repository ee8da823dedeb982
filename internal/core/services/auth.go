package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService runs the login flow. It is the only writer of the credential store.
type AuthService struct {
	gateway driven.RequestGateway
	store   driven.CredentialStore
}

// NewAuthService creates a new auth service.
func NewAuthService(gateway driven.RequestGateway, store driven.CredentialStore) *AuthService {
	return &AuthService{gateway: gateway, store: store}
}

// Login validates the request locally, exchanges it for a token and stores it.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.gateway == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	resp, err := s.gateway.Send(ctx, driven.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequestDTO{Email: req.Email, Password: req.Password},
	})
	if err != nil {
		return nil, err
	}
	dto, err := decodeJSON[loginResponseDTO](resp.Body, "login response")
	if err != nil {
		return nil, err
	}
	if err := s.store.Store(req.Email, dto.Token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	logger.Debug("signed in as %s", req.Email)
	return &domain.Session{Token: dto.Token, User: dto.userLabel()}, nil
}

// Logout clears the stored token.
func (s *AuthService) Logout() error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Clear()
}

// Account returns the signed-in email.
func (s *AuthService) Account() string {
	if s.store == nil || s.store.AccessToken() == "" {
		return ""
	}
	return s.store.Account()
}

// Authenticated reports whether a token is held.
func (s *AuthService) Authenticated() bool {
	return s.store != nil && s.store.AccessToken() != ""
}
