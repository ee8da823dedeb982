package driving

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// AuthService signs the user in and out.
type AuthService interface {
	// Login exchanges credentials for a token and stores it.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)

	// Logout clears the stored token.
	Logout() error

	// Account returns the signed-in email, or "" when signed out.
	Account() string

	// Authenticated reports whether a token is held.
	Authenticated() bool
}
