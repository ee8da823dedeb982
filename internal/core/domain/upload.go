package domain

// UploadFile is a pending local file in an upload batch.
type UploadFile struct {
	// Name is the file name sent in the multipart form.
	Name string

	// MediaType is the declared media type (e.g. application/pdf).
	MediaType string

	// Content is the raw file bytes.
	Content []byte
}

// SizeLabel formats the file size in kilobytes with two decimals.
func (f UploadFile) SizeLabel() string {
	return Document{Size: int64(len(f.Content))}.SizeLabel()
}

// UploadBatch is a transient set of files uploaded one after another.
// It is discarded once the batch completes or is cancelled.
type UploadBatch struct {
	// ID identifies the batch in logs and status messages.
	ID string

	// Files are the pending files in submission order.
	Files []UploadFile
}
