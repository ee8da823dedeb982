package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps the bearer token in the config file under
// auth.token and auth.email.
//
// Values are cached in memory. Watch reloads them when another
// process (for example `mineguard login` in a second terminal)
// rewrites the file.
type CredentialStore struct {
	config *ConfigStore

	mu      sync.RWMutex
	token   string
	account string
}

// NewCredentialStore creates a credential store over config.
func NewCredentialStore(config *ConfigStore) *CredentialStore {
	s := &CredentialStore{config: config}
	s.refresh()
	return s
}

func (s *CredentialStore) refresh() (changed bool) {
	token := s.config.GetString(driven.KeyAuthToken)
	account := s.config.GetString(driven.KeyAuthEmail)

	s.mu.Lock()
	defer s.mu.Unlock()
	changed = token != s.token || account != s.account
	s.token, s.account = token, account
	return changed
}

// AccessToken returns the cached token.
func (s *CredentialStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Account returns the cached account.
func (s *CredentialStore) Account() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// Store persists the token and account.
func (s *CredentialStore) Store(account, token string) error {
	err := s.config.SetAll(map[string]any{
		driven.KeyAuthEmail: account,
		driven.KeyAuthToken: token,
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	s.refresh()
	return nil
}

// Clear removes the token and account from the file.
func (s *CredentialStore) Clear() error {
	err := s.config.SetAll(map[string]any{
		driven.KeyAuthEmail: nil,
		driven.KeyAuthToken: nil,
	})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.refresh()
	return nil
}

// Watch reloads credentials when the config file changes and sends on
// the returned channel each time the token or account actually changed.
// The channel is closed when ctx is cancelled.
func (s *CredentialStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Editors and toml writers replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.config.Path())); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(s.config.Path()), err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !s.handleFsEvent(event) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("credential watcher: %v", err)
			}
		}
	}()
	return changes, nil
}

// handleFsEvent reloads on writes to the config file and reports
// whether the credentials changed.
func (s *CredentialStore) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.config.Path()) {
		return false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if err := s.config.Load(); err != nil {
		logger.Warn("reload %s: %v", s.config.Path(), err)
		return false
	}
	changed := s.refresh()
	if changed {
		logger.Debug("credentials reloaded from %s", s.config.Path())
	}
	return changed
}
