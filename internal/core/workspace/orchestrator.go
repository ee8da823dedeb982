package workspace

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Documents   driving.DocumentService
	Comparisons driving.ComparisonService
	QA          driving.QAService
	Payloads    driven.PayloadStore
	Decoder     driven.PageDecoder
	Suggestions driven.SuggestionStore
}

// Orchestrator owns the active document id and everything derived from it.
//
// Changing the id resets the viewer, the conversation, the comparison
// and the insight pager synchronously, before any data for the new
// document arrives. The document, its payload, the candidate list and
// the chat history then load independently.
type Orchestrator struct {
	deps Deps

	documentID string
	epoch      uint64

	docStatus Status
	doc       *domain.Document
	docErr    error

	listStatus Status
	list       []domain.Document
	listErr    error

	insightPage     int
	summaryExpanded bool

	viewer       *Viewer
	comparison   *Comparison
	conversation *Conversation

	authRequired bool
	notices      []Notice
}

// NewOrchestrator creates an orchestrator with no active document.
func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{
		deps:         deps,
		insightPage:  1,
		viewer:       NewViewer(deps.Documents, deps.Payloads, deps.Decoder),
		comparison:   NewComparison(deps.Comparisons),
		conversation: NewConversation(deps.QA),
	}
}

// DocumentLoaded carries the active document.
type DocumentLoaded struct {
	epoch      uint64
	DocumentID string
	Document   *domain.Document
	Err        error
}

func (DocumentLoaded) isEvent() {}

// CandidatesLoaded carries the documents offered as comparison targets.
type CandidatesLoaded struct {
	epoch     uint64
	Documents []domain.Document
	Err       error
}

func (CandidatesLoaded) isEvent() {}

// OnDocumentIDChanged makes id the active document. Navigating to the
// current id is a no-op while it is loading or loaded; after a failed
// load it retries.
func (o *Orchestrator) OnDocumentIDChanged(id string) []Effect {
	if id == o.documentID && (o.docStatus == StatusLoading || o.docStatus == StatusReady) {
		return nil
	}
	logger.Debug("workspace: open %q", id)

	o.epoch++
	o.documentID = id
	o.doc = nil
	o.docErr = nil
	o.list = nil
	o.listErr = nil
	o.insightPage = 1
	o.summaryExpanded = false

	// Reset every slice before anything for the new id can arrive.
	viewerLoad := o.viewer.Load(id)
	o.comparison.Reset(id)
	history := o.conversation.Open(id)

	if id == "" {
		o.docStatus = StatusIdle
		o.listStatus = StatusIdle
		return nil
	}

	o.docStatus = StatusLoading
	o.listStatus = StatusLoading
	return compact(o.fetchDocument(), o.fetchCandidates(), viewerLoad, history)
}

func (o *Orchestrator) fetchDocument() Effect {
	epoch, id, docs := o.epoch, o.documentID, o.deps.Documents
	return func(ctx context.Context) Event {
		if docs == nil {
			return DocumentLoaded{epoch: epoch, DocumentID: id, Err: domain.ErrNotImplemented}
		}
		doc, err := docs.Get(ctx, id)
		return DocumentLoaded{epoch: epoch, DocumentID: id, Document: doc, Err: err}
	}
}

func (o *Orchestrator) fetchCandidates() Effect {
	epoch, docs := o.epoch, o.deps.Documents
	return func(ctx context.Context) Event {
		if docs == nil {
			return CandidatesLoaded{epoch: epoch, Err: domain.ErrNotImplemented}
		}
		list, err := docs.List(ctx)
		return CandidatesLoaded{epoch: epoch, Documents: list, Err: err}
	}
}

// Reload fetches the active document again, for example after signing in.
func (o *Orchestrator) Reload() []Effect {
	id := o.documentID
	o.documentID = ""
	o.docStatus = StatusIdle
	return o.OnDocumentIDChanged(id)
}

// Apply handles an event produced by one of this orchestrator's effects.
func (o *Orchestrator) Apply(ev Event) []Effect {
	switch ev := ev.(type) {
	case DocumentLoaded:
		o.applyDocument(ev)
	case CandidatesLoaded:
		o.applyCandidates(ev)
	case PayloadLoaded:
		if o.viewer.Apply(ev) {
			o.flagAuth(ev.Err)
		}
	case ComparisonFinished:
		if o.comparison.Apply(ev) && ev.Err != nil {
			if !o.flagAuth(ev.Err) {
				o.notify(NoticeError, NoticeComparisonError)
			}
		}
	case HistoryLoaded:
		if o.conversation.ApplyHistory(ev) && ev.Err != nil {
			o.flagAuth(ev.Err)
			logger.Warn("load chat history for %s: %v", ev.DocumentID, ev.Err)
		}
	case AnswerReceived:
		if o.conversation.ApplyAnswer(ev) && ev.Err != nil {
			// The fallback turn is already recorded; an expired session
			// additionally sends the user to sign in.
			o.flagAuth(ev.Err)
			logger.Debug("answer failed for %s: %v", ev.DocumentID, ev.Err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDocument(ev DocumentLoaded) {
	if ev.epoch != o.epoch || ev.DocumentID != o.documentID {
		return
	}
	if ev.Err != nil {
		o.docStatus = StatusFailed
		o.docErr = ev.Err
		o.flagAuth(ev.Err)
		return
	}
	doc := ev.Document.Clone()
	o.doc = &doc
	o.docStatus = StatusReady
}

func (o *Orchestrator) applyCandidates(ev CandidatesLoaded) {
	if ev.epoch != o.epoch {
		return
	}
	if ev.Err != nil {
		o.listStatus = StatusFailed
		o.listErr = ev.Err
		o.flagAuth(ev.Err)
		return
	}
	o.listStatus = StatusReady
	o.list = domain.ExcludeDocument(ev.Documents, o.documentID)
}

// SelectTarget picks a comparison target from the candidates.
func (o *Orchestrator) SelectTarget(targetID string) error {
	return o.comparison.SelectTarget(targetID)
}

// Compare requests a comparison against the selected target.
func (o *Orchestrator) Compare() ([]Effect, error) {
	eff, err := o.comparison.Compare()
	if err != nil {
		return nil, err
	}
	return []Effect{eff}, nil
}

// Ask submits a question about the active document.
func (o *Orchestrator) Ask(question string) ([]Effect, error) {
	eff, err := o.conversation.Ask(question)
	if err != nil {
		return nil, err
	}
	return []Effect{eff}, nil
}

// NextPage moves the viewer forward one page.
func (o *Orchestrator) NextPage() { o.viewer.Next() }

// PreviousPage moves the viewer back one page.
func (o *Orchestrator) PreviousPage() { o.viewer.Previous() }

// GoToPage jumps the viewer to page n.
func (o *Orchestrator) GoToPage(n int) { o.viewer.GoTo(n) }

// ToggleSummary expands or collapses a long summary.
func (o *Orchestrator) ToggleSummary() { o.summaryExpanded = !o.summaryExpanded }

// NextInsights shows the next page of key points.
func (o *Orchestrator) NextInsights() { o.moveInsights(1) }

// PreviousInsights shows the previous page of key points.
func (o *Orchestrator) PreviousInsights() { o.moveInsights(-1) }

func (o *Orchestrator) moveInsights(delta int) {
	var points []string
	if o.doc != nil {
		points = o.doc.KeyPoints()
	}
	total := domain.TotalKeyPointPages(len(points))
	if total == 0 {
		o.insightPage = 1
		return
	}
	o.insightPage = clamp(o.insightPage+delta, 1, total)
}

// Close releases the viewer's payload. The orchestrator must not be
// used afterwards except to read its last snapshot.
func (o *Orchestrator) Close() {
	o.viewer.Close()
}

func (o *Orchestrator) flagAuth(err error) bool {
	if domain.Classify(err) == domain.FailureAuth {
		o.authRequired = true
		return true
	}
	return false
}

func (o *Orchestrator) notify(kind NoticeKind, text string) {
	o.notices = append(o.notices, Notice{Kind: kind, Text: text})
}

// TakeNotices returns and clears pending notices.
func (o *Orchestrator) TakeNotices() []Notice {
	n := o.notices
	o.notices = nil
	return n
}

// TakeAuthRequired reports and clears the re-authentication signal.
func (o *Orchestrator) TakeAuthRequired() bool {
	r := o.authRequired
	o.authRequired = false
	return r
}

// DocumentID returns the active document id.
func (o *Orchestrator) DocumentID() string { return o.documentID }

func compact(effs ...Effect) []Effect {
	out := effs[:0]
	for _, e := range effs {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
