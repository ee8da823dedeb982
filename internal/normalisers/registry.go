package normalisers

import (
	"context"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches payloads to the highest-priority normaliser that
// supports their MIME type. Exact types win over family wildcards of the
// same priority.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, n)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// SupportedMIMETypes returns all MIME types that can be normalised, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, n := range r.normalisers {
		for _, t := range n.SupportedMIMETypes() {
			seen[t] = struct{}{}
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Normalise transforms a payload using the best matching normaliser.
// It returns domain.ErrUnsupportedFormat when nothing matches.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawPayload) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	mediaType := BaseType(raw.MediaType)

	n := r.find(mediaType)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, mediaType)
	}
	logger.Debug("normalise %s as %s with %T", raw.DocumentID, mediaType, n)

	normalised := *raw
	normalised.MediaType = mediaType
	return n.Normalise(ctx, &normalised)
}

func (r *Registry) find(mediaType string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var family driven.Normaliser
	for _, n := range r.normalisers {
		for _, t := range n.SupportedMIMETypes() {
			if t == mediaType {
				if family == nil || n.Priority() >= family.Priority() {
					return n
				}
				return family
			}
			if family == nil && matchesFamily(t, mediaType) {
				family = n
			}
		}
	}
	return family
}

// BaseType strips parameters and lowercases a media type, so
// "Text/Plain; charset=utf-8" becomes "text/plain".
func BaseType(mediaType string) string {
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		return mt
	}
	base, _, _ := strings.Cut(mediaType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

func matchesFamily(pattern, mediaType string) bool {
	prefix, ok := strings.CutSuffix(pattern, "/*")
	return ok && strings.HasPrefix(mediaType, prefix+"/")
}
