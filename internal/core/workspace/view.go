package workspace

import (
	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// View is an immutable snapshot of the workspace for presentation.
type View struct {
	DocumentID string

	DocumentStatus Status
	Document       *domain.Document
	DocumentFault  domain.FailureKind
	DocumentErr    error

	Summary          string
	SummaryTruncated bool
	SummaryExpanded  bool
	Insights         domain.KeyPointPage
	InsightPages     int

	CandidatesStatus Status
	Candidates       []domain.Document

	Viewer     ViewerView
	Comparison ComparisonView
	Chat       ChatView
}

// ViewerView is the viewer slice of a View.
type ViewerView struct {
	Status    Status
	Page      int
	PageCount int
	Text      string
	Err       error
}

// ComparisonView is the comparison slice of a View.
type ComparisonView struct {
	TargetID string
	Pending  bool
	Result   *domain.ComparisonResult
	Err      error
}

// ChatView is the conversation slice of a View.
type ChatView struct {
	HistoryStatus   Status
	Turns           []domain.ChatTurn
	Asking          bool
	PendingQuestion string
	Suggestions     []string
}

// Snapshot builds the current View. It shares no mutable state with
// the orchestrator.
func (o *Orchestrator) Snapshot() View {
	v := View{
		DocumentID:       o.documentID,
		DocumentStatus:   o.docStatus,
		DocumentErr:      o.docErr,
		DocumentFault:    domain.Classify(o.docErr),
		SummaryExpanded:  o.summaryExpanded,
		CandidatesStatus: o.listStatus,
		Candidates:       domain.CloneDocuments(o.list),
		Viewer: ViewerView{
			Status:    o.viewer.Status(),
			Page:      o.viewer.Page(),
			PageCount: o.viewer.PageCount(),
			Text:      o.viewer.CurrentText(),
			Err:       o.viewer.Err(),
		},
		Comparison: ComparisonView{
			TargetID: o.comparison.TargetID(),
			Pending:  o.comparison.Pending(),
			Err:      o.comparison.Err(),
		},
		Chat: ChatView{
			HistoryStatus:   o.conversation.HistoryStatus(),
			Turns:           o.conversation.Turns(),
			Asking:          o.conversation.Asking(),
			PendingQuestion: o.conversation.PendingQuestion(),
		},
	}

	if o.doc != nil {
		doc := o.doc.Clone()
		v.Document = &doc
		v.Summary, v.SummaryTruncated = domain.SummaryPreview(doc.Summary(), o.summaryExpanded)
		points := doc.KeyPoints()
		v.InsightPages = domain.TotalKeyPointPages(len(points))
		v.Insights = domain.KeyPointPageAt(points, o.insightPage)
		v.Insights.Items = append([]string(nil), v.Insights.Items...)
	}

	if r := o.comparison.Result(); r != nil {
		clone := r.Clone()
		v.Comparison.Result = &clone
	}

	if len(v.Chat.Turns) == 0 {
		if o.deps.Suggestions != nil {
			v.Chat.Suggestions = o.deps.Suggestions.Suggestions()
		} else {
			v.Chat.Suggestions = append([]string(nil), domain.SuggestedPrompts...)
		}
	}
	return v
}
