package domain

// RawPayload is a downloaded document payload before normalisation.
type RawPayload struct {
	// DocumentID is the document the payload belongs to.
	DocumentID string

	// MediaType is the base content type without parameters
	// (e.g., "application/pdf").
	MediaType string

	// Path is where the payload can be read while its handle is live.
	// Normalisers that shell out to a tool read from here.
	Path string

	// Content is the raw bytes.
	Content []byte
}
