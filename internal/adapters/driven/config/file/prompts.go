package file

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Ensure SuggestionStore implements the interface.
var _ driven.SuggestionStore = (*SuggestionStore)(nil)

// SuggestionsFile is the file name under the config directory.
const SuggestionsFile = "suggestions.txt"

// SuggestionStore loads suggested chat prompts from a user-editable file,
// one prompt per line. Blank lines and lines starting with # are ignored.
//
// The file is created with the built-in prompts on first access, not in
// the constructor, so tests and read-only commands do no unexpected I/O.
type SuggestionStore struct {
	mu       sync.RWMutex
	path     string
	cache    []string
	initOnce sync.Once
	initErr  error
}

// NewSuggestionStore creates a file-based suggestion store.
// If configDir is empty, defaults to ~/.mineguard.
func NewSuggestionStore(configDir string) (*SuggestionStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = dir
	}
	return &SuggestionStore{path: filepath.Join(configDir, SuggestionsFile)}, nil
}

// Suggestions returns the configured prompts, falling back to the defaults.
func (s *SuggestionStore) Suggestions() []string {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return defaultSuggestions()
	}

	s.mu.RLock()
	if s.cache != nil {
		out := append([]string(nil), s.cache...)
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	prompts, err := s.loadFromFile()
	if err != nil {
		logger.Warn("load %s: %v", s.path, err)
		return defaultSuggestions()
	}
	if len(prompts) == 0 {
		prompts = defaultSuggestions()
	}

	s.mu.Lock()
	if s.cache == nil {
		s.cache = prompts
	}
	out := append([]string(nil), s.cache...)
	s.mu.Unlock()
	return out
}

// Reload clears the cache, forcing a fresh read from disk.
func (s *SuggestionStore) Reload() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

// Path returns the suggestions file path.
func (s *SuggestionStore) Path() string {
	return s.path
}

func defaultSuggestions() []string {
	return append([]string(nil), domain.SuggestedPrompts...)
}

// initialise writes the default file if none exists.
func (s *SuggestionStore) initialise() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		s.initErr = fmt.Errorf("create config directory: %w", err)
		return
	}
	if _, err := os.Stat(s.path); !os.IsNotExist(err) {
		return
	}

	var b strings.Builder
	b.WriteString("# Suggested questions shown when a document chat is empty.\n")
	b.WriteString("# One per line. Lines starting with # are ignored.\n")
	for _, p := range domain.SuggestedPrompts {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0600); err != nil {
		s.initErr = fmt.Errorf("create %s: %w", s.path, err)
	}
}

func (s *SuggestionStore) loadFromFile() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var prompts []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	return prompts, scanner.Err()
}
