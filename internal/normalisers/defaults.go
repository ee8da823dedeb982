package normalisers

import (
	"github.com/custodia-labs/mineguard-cli/internal/normalisers/docx"
	"github.com/custodia-labs/mineguard-cli/internal/normalisers/html"
	"github.com/custodia-labs/mineguard-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/mineguard-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/mineguard-cli/internal/normalisers/plaintext"
)

// RegisterDefaults registers all built-in normalisers with the registry.
// pdfTool is the pdftotext binary; empty uses the one on PATH.
func RegisterDefaults(r *Registry, pdfTool string) {
	r.Register(pdf.New(pdf.WithTool(pdfTool)))
	r.Register(docx.New())
	r.Register(html.New())
	r.Register(markdown.New())
	r.Register(plaintext.New())
}

// NewDefaultRegistry returns a registry with the built-in normalisers.
func NewDefaultRegistry(pdfTool string) *Registry {
	r := NewRegistry()
	RegisterDefaults(r, pdfTool)
	return r
}
