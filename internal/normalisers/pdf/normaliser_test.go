package pdf

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
	// seen records the payload file content at run time.
	seen []byte
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name, m.args = name, args
	if len(args) >= 2 {
		m.seen, _ = os.ReadFile(args[len(args)-2])
	}
	return m.output, m.err
}

func TestNew(t *testing.T) {
	n := New()
	require.NotNil(t, n)
	assert.Equal(t, DefaultTool, n.Tool())
	assert.IsType(t, execRunner{}, n.runner)
}

func TestNew_Options(t *testing.T) {
	runner := &mockRunner{}
	n := New(WithTool("/opt/bin/pdftotext"), WithRunner(runner))
	assert.Equal(t, "/opt/bin/pdftotext", n.Tool())
	assert.Equal(t, runner, n.runner)

	n = New(WithTool(""), WithRunner(nil))
	assert.Equal(t, DefaultTool, n.Tool())
	assert.IsType(t, execRunner{}, n.runner)
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{"application/pdf"}, New().SupportedMIMETypes())
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_NilPayload(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_UsesPayloadPath(t *testing.T) {
	runner := &mockRunner{output: []byte("Page one\n\fPage two\n\f")}
	n := New(WithRunner(runner))

	result, err := n.Normalise(context.Background(), &domain.RawPayload{
		DocumentID: "doc-1",
		MediaType:  "application/pdf",
		Path:       "/tmp/payload.pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, "Page one\n\fPage two\n\f", result.Text)
	assert.Equal(t, DefaultTool, runner.name)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "/tmp/payload.pdf", "-"}, runner.args)
}

func TestNormalise_SpillsInMemoryContent(t *testing.T) {
	runner := &mockRunner{output: []byte("text")}
	n := New(WithRunner(runner))

	_, err := n.Normalise(context.Background(), &domain.RawPayload{
		DocumentID: "doc-1",
		Content:    []byte("%PDF-1.4 fake"),
	})

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(runner.seen))
	_, statErr := os.Stat(runner.args[len(runner.args)-2])
	assert.True(t, os.IsNotExist(statErr), "temporary file should be removed")
}

func TestNormalise_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("pdftotext crashed")}
	n := New(WithRunner(runner))

	result, err := n.Normalise(context.Background(), &domain.RawPayload{DocumentID: "doc-1", Path: "/x.pdf"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext failed for doc-1")
	assert.Nil(t, result)
}

func TestNormalise_ToolMissing(t *testing.T) {
	n := New(WithRunner(&mockRunner{err: ErrPDFToolNotFound}))

	_, err := n.Normalise(context.Background(), &domain.RawPayload{Path: "/x.pdf"})

	assert.ErrorIs(t, err, ErrPDFToolNotFound)
}

func TestCheckAvailable_MissingTool(t *testing.T) {
	n := New(WithTool("definitely-not-a-real-pdftotext-binary"))
	assert.ErrorIs(t, n.CheckAvailable(), ErrPDFToolNotFound)
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}
