package domain

import "unicode/utf8"

// KeyPointsPerPage is the number of key points shown per page.
const KeyPointsPerPage = 5

// SummaryPreviewChars is the summary length shown before "read more".
const SummaryPreviewChars = 200

// KeyPointPage is one page of key points.
type KeyPointPage struct {
	// Number is 1-based.
	Number int

	// FirstIndex is the 0-based index of Items[0] in the full sequence.
	FirstIndex int

	Items []string
}

// TotalKeyPointPages returns ceil(n / KeyPointsPerPage).
func TotalKeyPointPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + KeyPointsPerPage - 1) / KeyPointsPerPage
}

// KeyPointPageAt returns the page with the given 1-based number.
// Out-of-range numbers yield an empty page.
func KeyPointPageAt(points []string, number int) KeyPointPage {
	page := KeyPointPage{Number: number}
	if number < 1 || number > TotalKeyPointPages(len(points)) {
		return page
	}
	start := (number - 1) * KeyPointsPerPage
	end := min(start+KeyPointsPerPage, len(points))
	page.FirstIndex = start
	page.Items = points[start:end]
	return page
}

// PaginateKeyPoints splits points into pages of KeyPointsPerPage.
func PaginateKeyPoints(points []string) []KeyPointPage {
	total := TotalKeyPointPages(len(points))
	pages := make([]KeyPointPage, 0, total)
	for n := 1; n <= total; n++ {
		pages = append(pages, KeyPointPageAt(points, n))
	}
	return pages
}

// SummaryPreview returns the text to display for a summary and whether
// it was truncated. Empty summaries render as a placeholder.
func SummaryPreview(summary string, expanded bool) (string, bool) {
	if summary == "" {
		return "No summary available.", false
	}
	if utf8.RuneCountInString(summary) <= SummaryPreviewChars {
		return summary, false
	}
	if expanded {
		return summary, true
	}
	runes := []rune(summary)
	return string(runes[:SummaryPreviewChars]) + "…", true
}
