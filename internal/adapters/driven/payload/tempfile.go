package payload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Ensure TempStore implements the interface.
var _ driven.PayloadStore = (*TempStore)(nil)

// errStoreClosed is returned by Acquire once the store is closed.
var errStoreClosed = errors.New("payload store closed")

// TempStore creates one temporary file per acquired payload.
type TempStore struct {
	dir string

	mu      sync.Mutex
	handles map[*tempHandle]struct{}
	closed  bool
}

// NewTempStore creates a store writing under dir.
// An empty dir uses the system temp directory.
func NewTempStore(dir string) *TempStore {
	return &TempStore{dir: dir, handles: make(map[*tempHandle]struct{})}
}

// Live returns the number of handles not yet released.
func (s *TempStore) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// Close releases every handle still live and makes later Acquire
// calls fail. A copy that finishes after Close removes its own file.
func (s *TempStore) Close() error {
	s.mu.Lock()
	s.closed = true
	live := make([]*tempHandle, 0, len(s.handles))
	for h := range s.handles {
		live = append(live, h)
	}
	s.mu.Unlock()

	var errs []error
	for _, h := range live {
		if err := h.Release(); err != nil && !errors.Is(err, domain.ErrHandleReleased) {
			errs = append(errs, err)
		}
	}
	if len(live) > 0 {
		logger.Debug("payload store closed with %d live handles", len(live))
	}
	return errors.Join(errs...)
}

// Acquire copies r into a new temporary file.
func (s *TempStore) Acquire(ctx context.Context, documentID, mediaType string, r io.Reader) (driven.PayloadHandle, error) {
	f, err := os.CreateTemp(s.dir, "mineguard-payload-*")
	if err != nil {
		return nil, fmt.Errorf("create payload file: %w", err)
	}

	_, err = io.Copy(f, &ctxReader{ctx: ctx, r: r})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("%w: store payload for %s: %v", domain.ErrTransport, documentID, err)
	}

	h := &tempHandle{store: s, documentID: documentID, mediaType: mediaType, path: f.Name()}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("store payload for %s: %w", documentID, errStoreClosed)
	}
	s.handles[h] = struct{}{}
	s.mu.Unlock()

	logger.Debug("payload for %s stored at %s", documentID, f.Name())
	return h, nil
}

func (s *TempStore) forget(h *tempHandle) {
	s.mu.Lock()
	delete(s.handles, h)
	s.mu.Unlock()
}

type tempHandle struct {
	store      *TempStore
	documentID string
	mediaType  string
	path       string

	mu       sync.Mutex
	released bool
}

func (h *tempHandle) DocumentID() string { return h.documentID }
func (h *tempHandle) Path() string       { return h.path }
func (h *tempHandle) MediaType() string  { return h.mediaType }

// Release removes the temporary file. Only the first call has effect.
func (h *tempHandle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return domain.ErrHandleReleased
	}
	h.released = true
	h.store.forget(h)
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove payload file: %w", err)
	}
	logger.Debug("payload for %s released", h.documentID)
	return nil
}

// ctxReader stops a copy once ctx is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
