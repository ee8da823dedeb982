package list

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

func testDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:        "doc-1",
			Title:     "Water Permit",
			Size:      4096,
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Analysis:  &domain.Analysis{Summary: "Conditions for water extraction."},
		},
		{ID: "doc-2", Filename: "blast-plan.pdf"},
		{ID: "doc-3"},
	}
}

func TestNewDocumentList(t *testing.T) {
	l := NewDocumentList(styles.DefaultStyles())

	require.NotNil(t, l)
	assert.Equal(t, 0, l.Count())
	assert.Nil(t, l.SelectedDocument())
}

func TestNewDocumentList_NilStyles(t *testing.T) {
	l := NewDocumentList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
}

func TestDocumentList_ViewEmpty(t *testing.T) {
	l := NewDocumentList(nil)

	assert.Contains(t, l.View(), "No documents yet")
}

func TestDocumentList_View(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDimensions(100, 20)
	l.SetDocuments(testDocuments())

	view := l.View()

	assert.Contains(t, view, "Documents (3)")
	assert.Contains(t, view, "Water Permit")
	assert.Contains(t, view, "4.00 KB")
	assert.Contains(t, view, "2024-03-01")
	assert.Contains(t, view, "Conditions for water extraction.")
	assert.Contains(t, view, "blast-plan.pdf")
	assert.Contains(t, view, "Analysis pending")
}

func TestDocumentList_Navigation(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDocuments(testDocuments())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())
	assert.Equal(t, "doc-3", l.SelectedDocument().ID)

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, l.Selected())
}

func TestDocumentList_SetDocumentsClampsSelection(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDocuments(testDocuments())
	l.SetSelected(2)

	l.SetDocuments(testDocuments()[:1])
	assert.Equal(t, 0, l.Selected())

	l.SetSelected(5)
	assert.Equal(t, 0, l.Selected())
}

func TestDocumentList_TruncatesLongTitles(t *testing.T) {
	l := NewDocumentList(nil)
	l.SetDimensions(40, 20)
	l.SetDocuments([]domain.Document{{ID: "x", Title: strings.Repeat("Long ", 20)}})

	assert.Contains(t, l.View(), "...")
}
