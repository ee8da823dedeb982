package memory

import (
	"sync"

	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is an in-memory implementation of driven.CredentialStore.
// It backs tests and the --token flag, where nothing is persisted.
type CredentialStore struct {
	mu      sync.RWMutex
	account string
	token   string
}

// NewCredentialStore creates a credential store holding token.
// An empty token means signed out.
func NewCredentialStore(account, token string) *CredentialStore {
	return &CredentialStore{account: account, token: token}
}

// AccessToken returns the held token.
func (s *CredentialStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Account returns the account the token belongs to.
func (s *CredentialStore) Account() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// Store replaces the held token.
func (s *CredentialStore) Store(account, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = account
	s.token = token
	return nil
}

// Clear drops the held token.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = ""
	s.token = ""
	return nil
}
