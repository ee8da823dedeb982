package workspace

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
)

// Comparison tracks the compliance comparison for the active document.
//
// Each target selection and each Compare call takes a new token, so a
// response for an older selection is dropped when it arrives. A failed
// comparison keeps the previously displayed result.
type Comparison struct {
	svc driving.ComparisonService

	sourceID string
	targetID string
	token    uint64
	pending  bool
	result   *domain.ComparisonResult
	err      error
}

// NewComparison creates a comparison with no source.
func NewComparison(svc driving.ComparisonService) *Comparison {
	return &Comparison{svc: svc}
}

// ComparisonFinished is the outcome of one comparison request.
type ComparisonFinished struct {
	token    uint64
	SourceID string
	TargetID string
	Result   *domain.ComparisonResult
	Err      error
}

func (ComparisonFinished) isEvent() {}

// Reset re-keys the comparison to a new source and clears everything.
func (c *Comparison) Reset(sourceID string) {
	c.token++
	c.sourceID = sourceID
	c.targetID = ""
	c.pending = false
	c.result = nil
	c.err = nil
}

// SelectTarget chooses the document to compare against. Changing the
// target discards the displayed result and any in-flight request.
func (c *Comparison) SelectTarget(targetID string) error {
	if targetID != "" && targetID == c.sourceID {
		return domain.ErrSameDocument
	}
	if targetID == c.targetID {
		return nil
	}
	c.token++
	c.targetID = targetID
	c.pending = false
	c.result = nil
	c.err = nil
	return nil
}

// Compare issues one request for the current pair. A call while another
// is in flight supersedes it.
func (c *Comparison) Compare() (Effect, error) {
	if c.sourceID == "" {
		return nil, domain.ErrNoDocument
	}
	if c.targetID == "" {
		return nil, domain.ErrNoTarget
	}
	if c.svc == nil {
		return nil, domain.ErrNotImplemented
	}
	c.token++
	c.pending = true
	c.err = nil

	token, src, tgt, svc := c.token, c.sourceID, c.targetID, c.svc
	return func(ctx context.Context) Event {
		result, err := svc.Compare(ctx, src, tgt)
		return ComparisonFinished{token: token, SourceID: src, TargetID: tgt, Result: result, Err: err}
	}, nil
}

// Apply handles a ComparisonFinished event and reports whether it was current.
func (c *Comparison) Apply(ev ComparisonFinished) bool {
	if ev.token != c.token || ev.SourceID != c.sourceID || ev.TargetID != c.targetID {
		return false
	}
	c.pending = false
	if ev.Err != nil {
		c.err = ev.Err
		return true
	}
	if ev.Result != nil {
		r := ev.Result.Clone()
		c.result = &r
	}
	return true
}

// SourceID returns the document being evaluated.
func (c *Comparison) SourceID() string { return c.sourceID }

// TargetID returns the selected target.
func (c *Comparison) TargetID() string { return c.targetID }

// Pending reports whether a request is in flight.
func (c *Comparison) Pending() bool { return c.pending }

// Result returns the displayed result, or nil.
func (c *Comparison) Result() *domain.ComparisonResult { return c.result }

// Err returns the last failure.
func (c *Comparison) Err() error { return c.err }
