package domain

// RenderedPage is one decoded page of a document payload.
type RenderedPage struct {
	// Number is 1-based.
	Number int

	// Text is the page's renderable text.
	Text string
}
