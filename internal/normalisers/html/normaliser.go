package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML payload to readable text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawPayload) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	return &driven.NormaliseResult{Text: stripHTML(string(raw.Content))}, nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	dropped        = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
		regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`),
		regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`),
		regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`),
		regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`),
	}
	htmlComments   = regexp.MustCompile(`(?s)<!--.*?-->`)
	pageBreaks     = regexp.MustCompile(`(?i)<[^>]+page-break-(before|after)\s*:\s*always[^>]*>`)
	closeBlock     = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	openBlock      = regexp.MustCompile(`(?i)<(p|div|h[1-6]|tr|blockquote|pre|table|section|article)(\s[^>]*)?>`)
	listItems      = regexp.MustCompile(`(?i)<li(\s[^>]*)?>`)
	lineBreaks     = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags        = regexp.MustCompile(`<[^>]+>`)
	multiSpaces    = regexp.MustCompile(`[ \t]+`)
	formFeedMarker = "\x00pagebreak\x00"
)

// stripHTML removes tags and keeps one line per block. Elements styled
// with page-break-before/after: always start a new page.
func stripHTML(content string) string {
	for _, re := range dropped {
		content = re.ReplaceAllString(content, "")
	}
	content = htmlComments.ReplaceAllString(content, "")
	content = pageBreaks.ReplaceAllString(content, formFeedMarker)

	content = openBlock.ReplaceAllString(content, "\n")
	content = closeBlock.ReplaceAllString(content, "\n")
	content = listItems.ReplaceAllString(content, "\n• ")
	content = lineBreaks.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	pages := strings.Split(content, formFeedMarker)
	for i, page := range pages {
		lines := strings.Split(page, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if line = strings.TrimSpace(line); line != "" {
				kept = append(kept, line)
			}
		}
		pages[i] = strings.Join(kept, "\n")
	}
	return strings.Join(pages, "\f")
}
