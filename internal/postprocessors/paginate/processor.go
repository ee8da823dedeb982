// Package paginate splits oversized pages into screen-sized ones.
package paginate

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// DefaultPageSize is the default maximum number of characters per page.
const DefaultPageSize = 3000

// Processor splits pages longer than the page size at line boundaries.
// Formats without native pages arrive as one page and leave as several.
// It implements the PostProcessor interface.
type Processor struct {
	pageSize int
}

// Option configures the paginate processor.
type Option func(*Processor)

// WithPageSize sets the maximum page size in characters.
func WithPageSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// New creates a new paginate processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		pageSize: DefaultPageSize,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "paginate"
}

// PageSize returns the configured page size.
func (p *Processor) PageSize() int {
	return p.pageSize
}

// Process splits each oversized page and renumbers the result from 1.
func (p *Processor) Process(ctx context.Context, pages []domain.RenderedPage) ([]domain.RenderedPage, error) {
	out := make([]domain.RenderedPage, 0, len(pages))

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, text := range p.split(page.Text) {
			out = append(out, domain.RenderedPage{Number: len(out) + 1, Text: text})
		}
	}

	return out, nil
}

// split packs whole lines into pages of at most pageSize characters.
// A single line longer than a page is cut at the page size.
func (p *Processor) split(text string) []string {
	if utf8.RuneCountInString(text) <= p.pageSize {
		return []string{text}
	}

	var (
		parts   []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if part := strings.TrimRight(current.String(), "\n"); part != "" {
			parts = append(parts, part)
		}
		current.Reset()
		size = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if size+n > p.pageSize {
			flush()
		}
		for n > p.pageSize {
			runes := []rune(line)
			parts = append(parts, string(runes[:p.pageSize]))
			line = string(runes[p.pageSize:])
			n -= p.pageSize
		}
		current.WriteString(line)
		size += n
	}
	flush()

	return parts
}
