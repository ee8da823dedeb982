package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	types := New().SupportedMIMETypes()
	assert.Contains(t, types, "text/html")
	assert.Contains(t, types, "application/xhtml+xml")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise(t *testing.T) {
	raw := &domain.RawPayload{
		DocumentID: "doc-1",
		MediaType:  "text/html",
		Content: []byte(`<html><head><title>Permit</title><style>p{}</style></head>
<body><h1>Water Permit</h1><p>Discharge &amp; monitoring.</p><script>alert(1)</script></body></html>`),
	}

	result, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "Water Permit\nDischarge & monitoring.", result.Text)
}

func TestNormalise_NilPayload(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "just text", "just text"},
		{"comments", "a<!-- hidden -->b", "ab"},
		{"line breaks", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"lists", "<ul><li>first</li><li>second</li></ul>", "• first\n• second"},
		{"entities", "&lt;tag&gt; &quot;q&quot;", `<tag> "q"`},
		{"spaces", "<p>a   \t b</p>", "a b"},
		{"noscript and svg", "<noscript>x</noscript><svg><text>y</text></svg>z", "z"},
		{
			"page breaks",
			`<p>one</p><div style="page-break-before: always"></div><p>two</p>`,
			"one\ftwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripHTML(tt.in))
		})
	}
}
