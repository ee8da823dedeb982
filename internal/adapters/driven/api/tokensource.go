package api

import (
	"errors"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
)

// ErrNoToken is returned by CredentialTokenSource when signed out.
var ErrNoToken = errors.New("api: no token")

// CredentialTokenSource adapts a CredentialStore to oauth2.TokenSource.
// It is consulted on every request, so tokens written by a later
// login are picked up without rebuilding the client.
type CredentialTokenSource struct {
	Store driven.CredentialStore
}

// Token returns the held bearer token.
func (s CredentialTokenSource) Token() (*oauth2.Token, error) {
	if s.Store == nil {
		return nil, ErrNoToken
	}
	access := s.Store.AccessToken()
	if access == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: access, TokenType: "Bearer"}, nil
}
