package workspace

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Library is the document list with sequential batch uploads.
//
// Uploaded documents are prepended locally; the server is not re-listed.
// The first failure in a batch aborts the files that remain, and
// documents uploaded before it stay in the list.
type Library struct {
	docs driving.DocumentService

	token     uint64
	status    Status
	err       error
	documents []domain.Document

	batch        *domain.UploadBatch
	next         int
	authRequired bool
	notices      []Notice
}

// NewLibrary creates an empty library.
func NewLibrary(docs driving.DocumentService) *Library {
	return &Library{docs: docs}
}

// ListLoaded carries a document list.
type ListLoaded struct {
	token     uint64
	Documents []domain.Document
	Err       error
}

func (ListLoaded) isEvent() {}

// UploadFinished carries the outcome of one file in a batch.
type UploadFinished struct {
	BatchID  string
	Index    int
	Document *domain.Document
	Err      error
}

func (UploadFinished) isEvent() {}

// Refresh fetches the list.
func (l *Library) Refresh() Effect {
	if l.docs == nil {
		return nil
	}
	l.token++
	l.status = StatusLoading
	l.err = nil

	token, docs := l.token, l.docs
	return func(ctx context.Context) Event {
		list, err := docs.List(ctx)
		return ListLoaded{token: token, Documents: list, Err: err}
	}
}

// Upload starts a batch. Files are sent one after another.
func (l *Library) Upload(files []domain.UploadFile) (Effect, error) {
	if l.batch != nil {
		return nil, domain.ErrUploadInProgress
	}
	if len(files) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if l.docs == nil {
		return nil, domain.ErrNotImplemented
	}
	l.batch = &domain.UploadBatch{ID: uuid.NewString(), Files: append([]domain.UploadFile(nil), files...)}
	l.next = 0
	logger.Debug("upload batch %s: %d file(s)", l.batch.ID, len(files))
	return l.uploadNext(), nil
}

func (l *Library) uploadNext() Effect {
	batchID, index, file, docs := l.batch.ID, l.next, l.batch.Files[l.next], l.docs
	return func(ctx context.Context) Event {
		doc, err := docs.Upload(ctx, file)
		return UploadFinished{BatchID: batchID, Index: index, Document: doc, Err: err}
	}
}

// Cancel discards the files that have not been sent yet.
// A file already in flight still lands in the list if it succeeds.
func (l *Library) Cancel() {
	if l.batch != nil {
		logger.Debug("upload batch %s cancelled at file %d", l.batch.ID, l.next)
	}
	l.batch = nil
}

// Apply handles library events.
func (l *Library) Apply(ev Event) []Effect {
	switch ev := ev.(type) {
	case ListLoaded:
		l.applyList(ev)
	case UploadFinished:
		return l.applyUpload(ev)
	}
	return nil
}

func (l *Library) applyList(ev ListLoaded) {
	if ev.token != l.token {
		return
	}
	if ev.Err != nil {
		l.status = StatusFailed
		l.err = ev.Err
		l.flagAuth(ev.Err)
		return
	}
	l.status = StatusReady
	l.documents = append([]domain.Document(nil), ev.Documents...)
}

func (l *Library) applyUpload(ev UploadFinished) []Effect {
	current := l.batch != nil && l.batch.ID == ev.BatchID && l.next == ev.Index

	if ev.Err == nil && ev.Document != nil {
		// The server created the document even if the batch was cancelled.
		l.documents = domain.PrependDocument(l.documents, *ev.Document)
	}
	if !current {
		return nil
	}

	if ev.Err != nil {
		l.batch = nil
		if domain.Classify(ev.Err) == domain.FailureAuth {
			l.authRequired = true
			l.notify(NoticeError, NoticeSignInToUpload)
		} else {
			l.notify(NoticeError, NoticeUploadFailed)
		}
		return nil
	}

	l.next++
	if l.next < len(l.batch.Files) {
		return []Effect{l.uploadNext()}
	}
	l.batch = nil
	l.notify(NoticeSuccess, NoticeUploadSucceeded)
	return nil
}

func (l *Library) flagAuth(err error) {
	if domain.Classify(err) == domain.FailureAuth {
		l.authRequired = true
	}
}

func (l *Library) notify(kind NoticeKind, text string) {
	l.notices = append(l.notices, Notice{Kind: kind, Text: text})
}

// TakeNotices returns and clears pending notices.
func (l *Library) TakeNotices() []Notice {
	n := l.notices
	l.notices = nil
	return n
}

// TakeAuthRequired reports and clears the re-authentication signal.
func (l *Library) TakeAuthRequired() bool {
	r := l.authRequired
	l.authRequired = false
	return r
}

// Documents returns the list in display order.
func (l *Library) Documents() []domain.Document {
	return domain.CloneDocuments(l.documents)
}

// Status returns the list load state.
func (l *Library) Status() Status { return l.status }

// Err returns the list load failure.
func (l *Library) Err() error { return l.err }

// Uploading reports whether a batch is running.
func (l *Library) Uploading() bool { return l.batch != nil }

// UploadProgress returns the 0-based index of the file being sent and
// the batch size.
func (l *Library) UploadProgress() (int, int) {
	if l.batch == nil {
		return 0, 0
	}
	return l.next, len(l.batch.Files)
}
