package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Clone(t *testing.T) {
	doc := Document{
		ID:        "doc-1",
		Title:     "Safety Plan",
		CreatedAt: time.Now(),
		Analysis: &Analysis{
			Summary:   "summary",
			KeyPoints: []string{"a", "b"},
		},
	}

	clone := doc.Clone()
	clone.Analysis.KeyPoints[0] = "changed"
	clone.Analysis.Summary = "changed"

	require.NotNil(t, doc.Analysis)
	assert.Equal(t, "a", doc.Analysis.KeyPoints[0])
	assert.Equal(t, "summary", doc.Analysis.Summary)
}

func TestDocument_Clone_NoAnalysis(t *testing.T) {
	doc := Document{ID: "doc-1"}

	clone := doc.Clone()

	assert.Nil(t, clone.Analysis)
	assert.Empty(t, clone.Summary())
	assert.Nil(t, clone.KeyPoints())
}

func TestDocument_DisplayTitle(t *testing.T) {
	assert.Equal(t, "Title", Document{ID: "1", Title: "Title", Filename: "f.pdf"}.DisplayTitle())
	assert.Equal(t, "f.pdf", Document{ID: "1", Filename: "f.pdf"}.DisplayTitle())
	assert.Equal(t, "1", Document{ID: "1"}.DisplayTitle())
}

func TestDocument_SizeLabel(t *testing.T) {
	assert.Equal(t, "1.00 KB", Document{Size: 1024}.SizeLabel())
	assert.Equal(t, "2.50 KB", Document{Size: 2560}.SizeLabel())
	assert.Equal(t, "0.00 KB", Document{}.SizeLabel())
}

func TestPrependDocument(t *testing.T) {
	list := []Document{{ID: "b"}, {ID: "c"}, {ID: "d"}}

	out := PrependDocument(list, Document{ID: "a"})

	require.Len(t, out, 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(out))
	// The input is left untouched.
	assert.Equal(t, []string{"b", "c", "d"}, ids(list))
}

func TestPrependDocument_ExactlyOnce(t *testing.T) {
	list := []Document{{ID: "b"}, {ID: "a"}, {ID: "c"}}

	out := PrependDocument(list, Document{ID: "a", Title: "new"})

	assert.Equal(t, []string{"a", "b", "c"}, ids(out))
	assert.Equal(t, "new", out[0].Title)
}

func TestPrependDocument_Empty(t *testing.T) {
	out := PrependDocument(nil, Document{ID: "a"})
	assert.Equal(t, []string{"a"}, ids(out))
}

func TestExcludeDocument(t *testing.T) {
	list := []Document{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Equal(t, []string{"a", "c"}, ids(ExcludeDocument(list, "b")))
	assert.Equal(t, []string{"a", "b", "c"}, ids(ExcludeDocument(list, "zzz")))
	assert.Empty(t, ExcludeDocument(nil, "a"))
}

func TestDocumentLists_DoNotShareAnalysis(t *testing.T) {
	analysed := func() []Document {
		return []Document{{ID: "a", Analysis: &Analysis{Summary: "s", KeyPoints: []string{"k"}}}}
	}

	tests := []struct {
		name string
		copy func([]Document) []Document
	}{
		{"exclude", func(l []Document) []Document { return ExcludeDocument(l, "zzz") }},
		{"prepend", func(l []Document) []Document { return PrependDocument(l, Document{ID: "b"})[1:] }},
		{"clone", CloneDocuments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := analysed()
			out := tt.copy(list)
			require.Len(t, out, 1)

			out[0].Analysis.Summary = "changed"
			out[0].Analysis.KeyPoints[0] = "changed"

			assert.Equal(t, "s", list[0].Analysis.Summary)
			assert.Equal(t, "k", list[0].Analysis.KeyPoints[0])
		})
	}
}

func TestCloneDocuments_Nil(t *testing.T) {
	assert.Nil(t, CloneDocuments(nil))
}

func ids(docs []Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].ID
	}
	return out
}
