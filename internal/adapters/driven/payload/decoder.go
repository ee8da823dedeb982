package payload

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Ensure Decoder implements the interface.
var _ driven.PageDecoder = (*Decoder)(nil)

// Decoder turns payloads into pages. A normaliser registry extracts the
// text, and an optional post-processor pipeline reshapes the pages.
type Decoder struct {
	normalisers driven.NormaliserRegistry
	pipeline    driven.PostProcessorPipeline
}

// NewDecoder creates a decoder. pipeline may be nil.
func NewDecoder(normalisers driven.NormaliserRegistry, pipeline driven.PostProcessorPipeline) *Decoder {
	return &Decoder{normalisers: normalisers, pipeline: pipeline}
}

// Decode returns the payload's pages in order.
func (d *Decoder) Decode(ctx context.Context, h driven.PayloadHandle) ([]domain.RenderedPage, error) {
	mediaType, err := d.mediaType(h)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(h.Path())
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	result, err := d.normalisers.Normalise(ctx, &domain.RawPayload{
		DocumentID: h.DocumentID(),
		MediaType:  mediaType,
		Path:       h.Path(),
		Content:    content,
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", h.DocumentID(), err)
	}

	pages := SplitPages(result.Text)
	if d.pipeline != nil && len(pages) > 0 {
		pages, err = d.pipeline.Process(ctx, pages)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", h.DocumentID(), err)
		}
	}
	if len(pages) == 0 {
		return nil, domain.ErrEmptyPayload
	}
	logger.Debug("decoded %s (%s) into %d pages", h.DocumentID(), mediaType, len(pages))
	return pages, nil
}

// mediaType uses the declared type, sniffing the file when none was sent.
func (d *Decoder) mediaType(h driven.PayloadHandle) (string, error) {
	if mt := h.MediaType(); mt != "" && mt != "application/octet-stream" {
		return strings.ToLower(mt), nil
	}
	f, err := os.Open(h.Path())
	if err != nil {
		return "", fmt.Errorf("open payload: %w", err)
	}
	defer f.Close()
	head := make([]byte, 512)
	n, _ := f.Read(head)
	return http.DetectContentType(head[:n]), nil
}

// SplitPages splits form-feed separated text into numbered pages.
// A trailing form feed does not start a new page, and text that is
// entirely blank has no pages.
func SplitPages(text string) []domain.RenderedPage {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\f")
	parts := strings.Split(text, "\f")
	pages := make([]domain.RenderedPage, len(parts))
	for i, p := range parts {
		pages[i] = domain.RenderedPage{Number: i + 1, Text: strings.TrimRight(p, "\n ")}
	}
	return pages
}
