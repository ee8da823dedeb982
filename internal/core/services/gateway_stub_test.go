package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
)

// stubGateway records requests and replies with a canned response.
type stubGateway struct {
	requests []driven.Request
	SendFunc func(req driven.Request) (*driven.Response, error)
}

func (g *stubGateway) Send(_ context.Context, req driven.Request) (*driven.Response, error) {
	g.requests = append(g.requests, req)
	if g.SendFunc == nil {
		return nil, fmt.Errorf("%w: no stub", domain.ErrTransport)
	}
	return g.SendFunc(req)
}

func jsonReply(body string) func(driven.Request) (*driven.Response, error) {
	return func(driven.Request) (*driven.Response, error) {
		return &driven.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}, nil
	}
}

func binaryReply(mediaType, body string) func(driven.Request) (*driven.Response, error) {
	return func(driven.Request) (*driven.Response, error) {
		h := http.Header{}
		h.Set("Content-Type", mediaType)
		return &driven.Response{StatusCode: http.StatusOK, Header: h, Stream: io.NopCloser(strings.NewReader(body))}, nil
	}
}

func errReply(err error) func(driven.Request) (*driven.Response, error) {
	return func(driven.Request) (*driven.Response, error) {
		return nil, err
	}
}
