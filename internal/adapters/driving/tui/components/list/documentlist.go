// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// DocumentList displays documents in a navigable list.
type DocumentList struct {
	documents []domain.Document
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewDocumentList creates a new document list component.
func NewDocumentList(s *styles.Styles) *DocumentList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &DocumentList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the document list.
func (r *DocumentList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *DocumentList) Update(msg tea.Msg) (*DocumentList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the document list.
func (r *DocumentList) View() string {
	if len(r.documents) == 0 {
		return r.styles.Muted.Render("No documents yet. Press [u] to upload.")
	}

	lines := make([]string, 0, len(r.documents)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Documents (%d)", len(r.documents))), "")

	// Each document takes two lines
	visibleCount := (r.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.documents))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderDocument(i, &r.documents[i]))
	}

	return strings.Join(lines, "\n")
}

// renderDocument formats a single document with its size and date.
func (r *DocumentList) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	maxTitleLen := r.width - 24
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title := truncate(doc.DisplayTitle(), maxTitleLen)

	meta := doc.SizeLabel()
	if !doc.CreatedAt.IsZero() {
		meta += "  " + doc.CreatedAt.Format("2006-01-02")
	}

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, meta))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			r.styles.Muted.Render(meta)
	}

	preview := "Analysis pending"
	if summary := doc.Summary(); summary != "" {
		preview = summary
	}
	maxPreviewLen := r.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}
	previewLine := r.styles.Muted.Render("    " + truncate(strings.ReplaceAll(preview, "\n", " "), maxPreviewLen))

	return titleLine + "\n" + previewLine
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetDocuments replaces the list, keeping the selection in range.
func (r *DocumentList) SetDocuments(docs []domain.Document) {
	r.documents = docs
	if r.selected >= len(docs) {
		r.selected = max(len(docs)-1, 0)
	}
}

// Documents returns the current documents.
func (r *DocumentList) Documents() []domain.Document {
	return r.documents
}

// Selected returns the index of the selected document.
func (r *DocumentList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *DocumentList) SetSelected(index int) {
	if index >= 0 && index < len(r.documents) {
		r.selected = index
	}
}

// SelectedDocument returns the currently selected document, or nil if none.
func (r *DocumentList) SelectedDocument() *domain.Document {
	if len(r.documents) == 0 || r.selected < 0 || r.selected >= len(r.documents) {
		return nil
	}
	return &r.documents[r.selected]
}

// MoveUp moves selection up.
func (r *DocumentList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *DocumentList) MoveDown() {
	if r.selected < len(r.documents)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *DocumentList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of documents.
func (r *DocumentList) Count() int {
	return len(r.documents)
}
