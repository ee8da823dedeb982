package workspace

import (
	"context"
	"sync"
)

// Effect is deferred work that must run off the loop.
// It may block and must not touch workspace state.
type Effect func(ctx context.Context) Event

// Event is the result of an Effect, applied back on the loop.
type Event interface {
	isEvent()
}

// Status is the lifecycle of one independently loaded slice of state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// NoticeKind distinguishes transient notifications.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a transient message for the user.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Notification texts.
const (
	NoticeUploadSucceeded = "File upload successful!"
	NoticeUploadFailed    = "File upload failed!"
	NoticeSignInToUpload  = "Sign in before uploading!"
	NoticeComparisonError = "An error has occurred."
	NoticeNoCandidates    = "No other documents available to compare."
)

// discarder is implemented by events that own resources.
type discarder interface {
	discard()
}

// Discard frees any resource carried by an event that will never be
// applied.
func Discard(ev Event) {
	if d, ok := ev.(discarder); ok {
		d.discard()
	}
}

// Applier is implemented by the loop owners in this package.
type Applier interface {
	Apply(ev Event) []Effect
}

// Run executes effects concurrently and applies their events one at a
// time on the calling goroutine, until no effects remain or ctx is done.
func Run(ctx context.Context, a Applier, effects ...Effect) error {
	events := make(chan Event)
	var wg sync.WaitGroup
	pending := 0

	start := func(effs []Effect) {
		for _, eff := range effs {
			if eff == nil {
				continue
			}
			pending++
			wg.Add(1)
			go func(eff Effect) {
				defer wg.Done()
				ev := eff(ctx)
				select {
				case events <- ev:
				case <-ctx.Done():
					Discard(ev)
				}
			}(eff)
		}
	}

	start(effects)
	for pending > 0 {
		select {
		case ev := <-events:
			pending--
			if ctx.Err() != nil {
				Discard(ev)
				wg.Wait()
				return ctx.Err()
			}
			if ev != nil {
				start(a.Apply(ev))
			}
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		}
	}
	wg.Wait()
	return nil
}
