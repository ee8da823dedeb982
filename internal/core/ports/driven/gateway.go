package driven

import (
	"context"
	"io"
	"net/http"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// ResponseKind tells the gateway how to hand back the response body.
type ResponseKind int

const (
	// ResponseJSON reads the whole body into Response.Body.
	ResponseJSON ResponseKind = iota

	// ResponseBinary leaves the body unread in Response.Stream.
	// The caller must close it.
	ResponseBinary
)

// Request describes one outbound call.
type Request struct {
	// Method is the HTTP method.
	Method string

	// Path is relative to the configured base endpoint (e.g. "/documents").
	Path string

	// Body is encoded as JSON when non-nil.
	Body any

	// File is sent as the multipart field "file" when non-nil.
	// Body and File are mutually exclusive.
	File *domain.UploadFile

	// Kind selects how the response body is returned.
	Kind ResponseKind
}

// Response is a successful (2xx) reply.
type Response struct {
	StatusCode int
	Header     http.Header

	// Body is populated for ResponseJSON.
	Body []byte

	// Stream is populated for ResponseBinary.
	Stream io.ReadCloser
}

// RequestGateway sends requests to the document-intelligence service.
//
// Every call carries a bearer token when one is held. A missing token is
// not an error; the request is sent and the server decides.
// Non-2xx replies are returned as errors that keep the status code and
// body so callers can branch on 401 (domain.ErrUnauthorized) and
// 404 (domain.ErrNotFound). Failures before a response arrives wrap
// domain.ErrTransport.
type RequestGateway interface {
	Send(ctx context.Context, req Request) (*Response, error)
}
