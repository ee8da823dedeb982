package workspace

import (
	"context"
	"errors"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Viewer pages through a document's decoded payload.
//
// It moves Idle -> Loading -> Ready or Failed, and back to Loading
// whenever the document changes. It holds at most one payload handle
// and releases it when the document changes or on Close.
type Viewer struct {
	docs     driving.DocumentService
	payloads driven.PayloadStore
	decoder  driven.PageDecoder

	documentID string
	token      uint64
	status     Status
	pages      []domain.RenderedPage
	current    int
	err        error
	handle     driven.PayloadHandle
}

// NewViewer creates an idle viewer.
func NewViewer(docs driving.DocumentService, payloads driven.PayloadStore, decoder driven.PageDecoder) *Viewer {
	return &Viewer{docs: docs, payloads: payloads, decoder: decoder}
}

// PayloadLoaded is the outcome of fetching and decoding a payload.
type PayloadLoaded struct {
	token      uint64
	DocumentID string
	Handle     driven.PayloadHandle
	Pages      []domain.RenderedPage
	Err        error
}

func (PayloadLoaded) isEvent() {}

func (e PayloadLoaded) discard() {
	releaseHandle(e.Handle)
}

func releaseHandle(h driven.PayloadHandle) {
	if h == nil {
		return
	}
	if err := h.Release(); err != nil && !errors.Is(err, domain.ErrHandleReleased) {
		logger.Warn("release payload for %s: %v", h.DocumentID(), err)
	}
}

// Load enters Loading for id, releasing the previous payload.
func (v *Viewer) Load(id string) Effect {
	v.release()
	v.token++
	v.documentID = id
	v.pages = nil
	v.current = 1
	v.err = nil

	if id == "" {
		v.status = StatusIdle
		return nil
	}
	v.status = StatusLoading

	token := v.token
	docs, payloads, decoder := v.docs, v.payloads, v.decoder
	return func(ctx context.Context) Event {
		ev := PayloadLoaded{token: token, DocumentID: id}
		if docs == nil || payloads == nil || decoder == nil {
			ev.Err = domain.ErrNotImplemented
			return ev
		}
		rc, mediaType, err := docs.DownloadBinary(ctx, id)
		if err != nil {
			ev.Err = err
			return ev
		}
		h, err := payloads.Acquire(ctx, id, mediaType, rc)
		_ = rc.Close()
		if err != nil {
			ev.Err = err
			return ev
		}
		ev.Handle = h
		ev.Pages, ev.Err = decoder.Decode(ctx, h)
		return ev
	}
}

// Apply handles a PayloadLoaded event and reports whether it was current.
func (v *Viewer) Apply(ev PayloadLoaded) bool {
	if ev.token != v.token || ev.DocumentID != v.documentID {
		// Superseded: the payload belongs to nobody now.
		releaseHandle(ev.Handle)
		return false
	}
	v.handle = ev.Handle
	if ev.Err != nil {
		v.status = StatusFailed
		v.err = ev.Err
		v.pages = nil
		return true
	}
	if len(ev.Pages) == 0 {
		v.status = StatusFailed
		v.err = domain.ErrEmptyPayload
		return true
	}
	v.status = StatusReady
	v.pages = ev.Pages
	v.current = clamp(v.current, 1, len(v.pages))
	return true
}

// Next moves forward one page. It is a no-op on the last page.
func (v *Viewer) Next() {
	if v.status == StatusReady && v.current < len(v.pages) {
		v.current++
	}
}

// Previous moves back one page. It is a no-op on the first page.
func (v *Viewer) Previous() {
	if v.status == StatusReady && v.current > 1 {
		v.current--
	}
}

// GoTo jumps to page n, clamped into range.
func (v *Viewer) GoTo(n int) {
	if v.status == StatusReady {
		v.current = clamp(n, 1, len(v.pages))
	}
}

// Close releases the payload. The viewer returns to Idle.
func (v *Viewer) Close() {
	v.release()
	v.token++
	v.status = StatusIdle
	v.documentID = ""
	v.pages = nil
	v.current = 1
	v.err = nil
}

func (v *Viewer) release() {
	if v.handle != nil {
		releaseHandle(v.handle)
		v.handle = nil
	}
}

// Status returns the current state.
func (v *Viewer) Status() Status { return v.status }

// Page returns the 1-based current page.
func (v *Viewer) Page() int { return v.current }

// PageCount returns the number of decoded pages.
func (v *Viewer) PageCount() int { return len(v.pages) }

// Err returns the failure when Failed.
func (v *Viewer) Err() error { return v.err }

// HoldsPayload reports whether a payload handle is live.
func (v *Viewer) HoldsPayload() bool { return v.handle != nil }

// CurrentText returns the current page's text.
func (v *Viewer) CurrentText() string {
	if v.status != StatusReady || v.current < 1 || v.current > len(v.pages) {
		return ""
	}
	return v.pages[v.current-1].Text
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
