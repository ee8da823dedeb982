// Package tidy normalises whitespace in decoded pages.
package tidy

import (
	"context"
	"strings"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// Processor trims trailing whitespace from every line and collapses
// runs of blank lines into one. Page boundaries are left alone.
type Processor struct{}

// New creates a new tidy processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "tidy"
}

// Process tidies each page in place order.
func (p *Processor) Process(_ context.Context, pages []domain.RenderedPage) ([]domain.RenderedPage, error) {
	out := make([]domain.RenderedPage, len(pages))
	for i, page := range pages {
		out[i] = domain.RenderedPage{Number: page.Number, Text: tidy(page.Text)}
	}
	return out, nil
}

func tidy(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		kept = append(kept, line)
	}
	return strings.Trim(strings.Join(kept, "\n"), "\n")
}
