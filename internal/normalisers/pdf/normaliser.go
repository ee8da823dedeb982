// Package pdf provides a Normaliser for PDF payloads backed by pdftotext
// from poppler-utils. pdftotext terminates each page with a form feed, so
// page boundaries survive into the viewer.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// DefaultTool is the PDF text extractor looked up on PATH.
const DefaultTool = "pdftotext"

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found: install poppler-utils")

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if errors.Is(err, exec.ErrNotFound) {
		return nil, ErrPDFToolNotFound
	}
	return out, err
}

// Normaliser extracts PDF text page by page.
type Normaliser struct {
	runner CommandRunner
	tool   string
}

// Option configures the normaliser.
type Option func(*Normaliser)

// WithTool sets the pdftotext binary. Empty keeps DefaultTool.
func WithTool(tool string) Option {
	return func(n *Normaliser) {
		if tool != "" {
			n.tool = tool
		}
	}
}

// WithRunner injects the command runner.
func WithRunner(r CommandRunner) Option {
	return func(n *Normaliser) {
		if r != nil {
			n.runner = r
		}
	}
}

// New creates a PDF normaliser.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{runner: execRunner{}, tool: DefaultTool}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Tool returns the configured pdftotext binary.
func (n *Normaliser) Tool() string {
	return n.tool
}

// CheckAvailable reports whether the configured tool can be found.
func (n *Normaliser) CheckAvailable() error {
	if _, err := exec.LookPath(n.tool); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return "pdftotext is required to view PDF documents.\n" +
		"  macOS:  brew install poppler\n" +
		"  Debian: apt install poppler-utils\n" +
		"  Fedora: dnf install poppler-utils"
}

// Normalise runs pdftotext over the payload file. A payload held only in
// memory is spilled to a temporary file first.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawPayload) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	path := raw.Path
	if path == "" {
		tmp, cleanup, err := spill(raw.Content)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		path = tmp
	}

	out, err := n.runner.Run(ctx, n.tool, "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed for %s: %w", raw.DocumentID, err)
	}
	return &driven.NormaliseResult{Text: string(out)}, nil
}

func spill(content []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "mineguard-pdf-*")
	if err != nil {
		return "", nil, fmt.Errorf("create pdf file: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write pdf file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close pdf file: %w", err)
	}
	return f.Name(), cleanup, nil
}
