package domain

import (
	"fmt"
	"time"
)

// Document represents an uploaded file together with its analysis.
// Values are immutable once fetched; a refetch replaces the whole value.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// OwnerID is the user that uploaded the document.
	OwnerID string

	// Title is the human-readable title.
	Title string

	// Filename is the original uploaded file name.
	Filename string

	// Size is the payload size in bytes.
	Size int64

	// RawText is the extracted text of the document.
	RawText string

	// Analysis is populated asynchronously by the analysis service.
	// Nil until the service has produced it.
	Analysis *Analysis

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time
}

// Analysis holds the AI-derived summary of a document.
type Analysis struct {
	Summary    string
	KeyPoints  []string
	AnalyzedAt time.Time
}

// Clone returns a deep copy so callers can hand out snapshots.
func (d Document) Clone() Document {
	if d.Analysis != nil {
		a := *d.Analysis
		a.KeyPoints = append([]string(nil), d.Analysis.KeyPoints...)
		d.Analysis = &a
	}
	return d
}

// DisplayTitle returns the title, falling back to the filename and then the ID.
func (d Document) DisplayTitle() string {
	switch {
	case d.Title != "":
		return d.Title
	case d.Filename != "":
		return d.Filename
	default:
		return d.ID
	}
}

// SizeLabel formats the size in kilobytes with two decimals.
func (d Document) SizeLabel() string {
	return fmt.Sprintf("%.2f KB", float64(d.Size)/1024)
}

// Summary returns the analysis summary or an empty string.
func (d Document) Summary() string {
	if d.Analysis == nil {
		return ""
	}
	return d.Analysis.Summary
}

// KeyPoints returns the analysis key points or nil.
func (d Document) KeyPoints() []string {
	if d.Analysis == nil {
		return nil
	}
	return d.Analysis.KeyPoints
}

// PrependDocument returns a new list with doc at the head.
// Any existing entry with the same ID is dropped so the document
// appears exactly once; the order of the remaining entries is kept.
func PrependDocument(list []Document, doc Document) []Document {
	out := make([]Document, 0, len(list)+1)
	out = append(out, doc.Clone())
	for i := range list {
		if list[i].ID != doc.ID {
			out = append(out, list[i].Clone())
		}
	}
	return out
}

// ExcludeDocument returns the documents whose ID differs from id.
func ExcludeDocument(list []Document, id string) []Document {
	out := make([]Document, 0, len(list))
	for i := range list {
		if list[i].ID != id {
			out = append(out, list[i].Clone())
		}
	}
	return out
}

// CloneDocuments deep-copies every document in list.
func CloneDocuments(list []Document) []Document {
	if list == nil {
		return nil
	}
	out := make([]Document, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}
