package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Request Errors.

	// ErrUnauthorized indicates the server rejected the request with 401.
	// The user must sign in again before retrying.
	ErrUnauthorized = errors.New("authentication required")

	// ErrTransport indicates no response reached the client.
	ErrTransport = errors.New("transport failure")

	// ErrMalformedResponse indicates a response did not match its schema.
	// It is treated as a transport-layer failure.
	ErrMalformedResponse = errors.New("malformed response")

	// Workspace Errors.

	// ErrSameDocument indicates a comparison of a document against itself.
	ErrSameDocument = errors.New("cannot compare a document with itself")

	// ErrNoTarget indicates a comparison was requested without a target.
	ErrNoTarget = errors.New("no comparison target selected")

	// ErrNoDocument indicates an operation needs an active document.
	ErrNoDocument = errors.New("no active document")

	// ErrEmptyQuestion indicates an empty or whitespace-only question.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrQuestionPending indicates a question is already awaiting an answer.
	ErrQuestionPending = errors.New("a question is already pending")

	// ErrMissingCredentials indicates email or password was not provided.
	ErrMissingCredentials = errors.New("please enter both email and password")

	// ErrUploadInProgress indicates an upload batch is already running.
	ErrUploadInProgress = errors.New("upload in progress")

	// ErrEmptyPayload indicates a document payload decoded to zero pages.
	ErrEmptyPayload = errors.New("document has no pages")

	// ErrHandleReleased indicates a payload handle was used after release.
	ErrHandleReleased = errors.New("payload handle already released")

	// ErrUnsupportedFormat indicates no normaliser handles a payload's type.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// FailureKind classifies an error for presentation.
type FailureKind int

const (
	// FailureNone means there was no error.
	FailureNone FailureKind = iota
	// FailureTransport is a recoverable network or payload failure.
	FailureTransport
	// FailureAuth requires the user to sign in again.
	FailureAuth
	// FailureNotFound is an unknown entity.
	FailureNotFound
	// FailureOther is any other recoverable failure.
	FailureOther
)

// Classify maps an error onto the failure taxonomy.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrUnauthorized):
		return FailureAuth
	case errors.Is(err, ErrNotFound):
		return FailureNotFound
	case errors.Is(err, ErrTransport), errors.Is(err, ErrMalformedResponse):
		return FailureTransport
	default:
		return FailureOther
	}
}
