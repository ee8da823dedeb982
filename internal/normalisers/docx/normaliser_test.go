package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
)

// createTestDOCX creates a minimal DOCX archive in memory.
func createTestDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func wrapBody(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + body + `</w:body>
</w:document>`
}

func normalise(t *testing.T, content []byte) (*driven.NormaliseResult, error) {
	t.Helper()
	return New().Normalise(context.Background(), &domain.RawPayload{
		DocumentID: "doc-1",
		MediaType:  MIMEType,
		Content:    content,
	})
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{MIMEType}, New().SupportedMIMETypes())
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_Paragraphs(t *testing.T) {
	body := wrapBody(`
<w:p><w:r><w:t>Operating Plan</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">Dust is </w:t></w:r><w:r><w:t>monitored.</w:t></w:r></w:p>`)

	result, err := normalise(t, createTestDOCX(t, body))

	require.NoError(t, err)
	assert.Equal(t, "Operating Plan\nDust is monitored.", result.Text)
}

func TestNormalise_BreaksAndTabs(t *testing.T) {
	body := wrapBody(`
<w:p><w:r><w:t>Section</w:t><w:tab/><w:t>1</w:t></w:r></w:p>
<w:p><w:r><w:t>line</w:t><w:br/><w:t>wrapped</w:t></w:r></w:p>
<w:p><w:r><w:br w:type="page"/><w:t>Second page</w:t></w:r></w:p>`)

	result, err := normalise(t, createTestDOCX(t, body))

	require.NoError(t, err)
	assert.Equal(t, "Section\t1\nline\nwrapped\n\fSecond page", result.Text)
}

func TestNormalise_EmptyDocument(t *testing.T) {
	result, err := normalise(t, createTestDOCX(t, wrapBody("")))

	require.NoError(t, err)
	assert.Empty(t, result.Text)
}

func TestNormalise_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"not a zip", []byte("plain text, not a docx")},
		{"missing document.xml", createTestDOCX(t, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := normalise(t, tt.content)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, result)
		})
	}
}

func TestNormalise_NilPayload(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}
