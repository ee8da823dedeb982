package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RequestGateway = (*Client)(nil)

const (
	// DefaultBaseURL is used when no endpoint is configured.
	DefaultBaseURL = "http://localhost:3000"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// HeaderRequestID carries the per-request correlation id.
	HeaderRequestID = "X-Request-ID"

	// maxErrorBody bounds how much of a non-2xx body is kept.
	maxErrorBody = 64 << 10
)

// Options configures a Client.
type Options struct {
	// BaseURL is the service endpoint. Paths are appended to it.
	BaseURL string

	// Timeout applies to each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RateLimit is the proactive throttle in requests per second.
	RateLimit float64

	// Tokens supplies the bearer token. Nil sends unauthenticated requests.
	Tokens oauth2.TokenSource

	// Metrics records traffic. Nil disables metrics.
	Metrics *Metrics

	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// Client is the HTTP RequestGateway.
type Client struct {
	baseURL     string
	http        *http.Client
	tokens      oauth2.TokenSource
	rateLimiter *RateLimiter
	metrics     *Metrics
}

// NewClient creates a new gateway client.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:     base,
		http:        hc,
		tokens:      opts.Tokens,
		rateLimiter: NewRateLimiter(opts.RateLimit),
		metrics:     opts.Metrics,
	}
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send performs one request and returns the 2xx reply.
func (c *Client) Send(ctx context.Context, r driven.Request) (*driven.Response, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, r.Method, r.Path, err)
	}

	// The token is read at transmission time so a fresh login applies
	// to requests queued before it.
	c.authorize(req)

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(r.Method, r.Path, "error", time.Since(start))
		logger.Request(r.Method, r.Path, 0, requestID)
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, r.Method, r.Path, err)
	}
	c.metrics.observe(r.Method, r.Path, strconv.Itoa(resp.StatusCode), time.Since(start))
	logger.Request(r.Method, r.Path, resp.StatusCode, requestID)
	c.rateLimiter.Observe(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body, Method: r.Method, Path: r.Path}
	}

	out := &driven.Response{StatusCode: resp.StatusCode, Header: resp.Header}
	if r.Kind == driven.ResponseBinary {
		out.Stream = resp.Body
		return out, nil
	}

	defer resp.Body.Close()
	out.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %v", domain.ErrTransport, r.Method, r.Path, err)
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, r driven.Request) (*http.Request, error) {
	if r.Body != nil && r.File != nil {
		return nil, fmt.Errorf("%w: request has both a body and a file", domain.ErrInvalidInput)
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.File != nil:
		buf, ct, err := encodeMultipart(r.File)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case r.Body != nil:
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	path := r.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.Kind == driven.ResponseJSON {
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

// authorize attaches the bearer header when a token is held.
func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	tok, err := c.tokens.Token()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			logger.Warn("token source: %v", err)
		}
		return
	}
	if tok.AccessToken != "" {
		tok.SetAuthHeader(req)
	}
}

func encodeMultipart(f *domain.UploadFile) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
	mediaType := f.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	h.Set("Content-Type", mediaType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := part.Write(f.Content); err != nil {
		return nil, "", fmt.Errorf("write multipart part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
