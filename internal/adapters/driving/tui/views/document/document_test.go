package document

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/workspace"
)

type mockDocuments struct {
	GetFunc  func(ctx context.Context, id string) (*domain.Document, error)
	ListFunc func(ctx context.Context) ([]domain.Document, error)
}

func (m *mockDocuments) List(ctx context.Context) ([]domain.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockDocuments) Get(ctx context.Context, id string) (*domain.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Document{ID: id, Title: "Doc " + id}, nil
}

func (m *mockDocuments) Upload(_ context.Context, _ domain.UploadFile) (*domain.Document, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockDocuments) DownloadBinary(_ context.Context, id string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("payload " + id)), "application/pdf", nil
}

type mockComparisons struct {
	CompareFunc func(ctx context.Context, src, tgt string) (*domain.ComparisonResult, error)
}

func (m *mockComparisons) Compare(ctx context.Context, src, tgt string) (*domain.ComparisonResult, error) {
	return m.CompareFunc(ctx, src, tgt)
}

type mockQA struct {
	AskFunc func(ctx context.Context, id, q string) (string, error)
	asks    int
}

func (m *mockQA) History(_ context.Context, _ string) ([]domain.ChatTurn, error) {
	return nil, nil
}

func (m *mockQA) Ask(ctx context.Context, id, q string) (string, error) {
	m.asks++
	if m.AskFunc != nil {
		return m.AskFunc(ctx, id, q)
	}
	return "answer to " + q, nil
}

type handle struct{ id string }

func (h *handle) DocumentID() string { return h.id }
func (h *handle) Path() string       { return "" }
func (h *handle) MediaType() string  { return "application/pdf" }
func (h *handle) Release() error     { return nil }

type payloads struct{}

func (payloads) Acquire(_ context.Context, id, _ string, _ io.Reader) (driven.PayloadHandle, error) {
	return &handle{id: id}, nil
}

type decoder struct{}

func (decoder) Decode(_ context.Context, h driven.PayloadHandle) ([]domain.RenderedPage, error) {
	return []domain.RenderedPage{
		{Number: 1, Text: "first page of " + h.DocumentID()},
		{Number: 2, Text: "second page of " + h.DocumentID()},
	}, nil
}

func drain(v *View, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case messages.WorkspaceEvent:
			queue = append(queue, v.Apply(msg.Event))
		case nil:
		default:
			out = append(out, msg)
		}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type fixture struct {
	docs *mockDocuments
	cmp  *mockComparisons
	qa   *mockQA
}

func newFixture() *fixture {
	return &fixture{
		docs: &mockDocuments{ListFunc: func(_ context.Context) ([]domain.Document, error) {
			return []domain.Document{{ID: "a"}, {ID: "b", Title: "Regulation"}, {ID: "c", Title: "Standard"}}, nil
		}},
		cmp: &mockComparisons{CompareFunc: func(_ context.Context, src, tgt string) (*domain.ComparisonResult, error) {
			evals := []domain.Evaluation{
				{Requirement: "Dust control", Status: domain.StatusCompliant, Rationale: "Sprayers fitted"},
				{Requirement: "Water reporting", Status: domain.StatusNonCompliant, Rationale: "Not reported"},
			}
			return &domain.ComparisonResult{
				SourceDocumentID: src, TargetDocumentID: tgt, ComplianceScore: 0.5,
				Summary: domain.TallyEvaluations(evals), Evaluations: evals,
			}, nil
		}},
		qa: &mockQA{},
	}
}

func (f *fixture) open(t *testing.T, id string) *View {
	t.Helper()
	v := NewView(nil, workspace.Deps{
		Documents:   f.docs,
		Comparisons: f.cmp,
		QA:          f.qa,
		Payloads:    payloads{},
		Decoder:     decoder{},
	})
	v.SetDimensions(200, 60)
	drain(v, v.Open(id))
	return v
}

func TestView_OpenRendersDocument(t *testing.T) {
	f := newFixture()
	f.docs.GetFunc = func(_ context.Context, id string) (*domain.Document, error) {
		return &domain.Document{ID: id, Title: "Mining Permit", Analysis: &domain.Analysis{
			Summary:   "Permit for open pit operations.",
			KeyPoints: []string{"Dust", "Water", "Noise"},
		}}, nil
	}
	v := f.open(t, "a")

	out := v.View()
	assert.Contains(t, out, "Mining Permit")
	assert.Contains(t, out, "first page of a")
	assert.Contains(t, out, "Page 1 of 2")
	assert.Contains(t, out, "Permit for open pit operations.")
	assert.Contains(t, out, "Insight 2: Water")
	assert.Contains(t, out, "What are the compliance risks?")
}

func TestView_Paging(t *testing.T) {
	v := newFixture().open(t, "a")

	v, _ = v.Update(key("right"))
	assert.Equal(t, 2, v.Snapshot().Viewer.Page)
	assert.Contains(t, v.View(), "second page of a")

	v, _ = v.Update(key("l"))
	assert.Equal(t, 2, v.Snapshot().Viewer.Page, "clamped at the last page")

	v, _ = v.Update(key("left"))
	assert.Equal(t, 1, v.Snapshot().Viewer.Page)
}

func TestView_DocumentFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		wantAuth bool
	}{
		{"not found", domain.ErrNotFound, "Document not found", false},
		{"unauthorized", domain.ErrUnauthorized, "Sign in required", true},
		{"transport", domain.ErrTransport, "Could not load document", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.docs.GetFunc = func(_ context.Context, _ string) (*domain.Document, error) {
				return nil, tt.err
			}
			v := NewView(nil, workspace.Deps{Documents: f.docs, Comparisons: f.cmp, QA: f.qa})
			v.SetDimensions(200, 60)
			out := drain(v, v.Open("a"))

			if tt.wantAuth {
				assert.Contains(t, out, messages.AuthRequired{})
			}
			assert.Contains(t, v.View(), tt.want)
		})
	}
}

func TestView_TargetCycleAndCompare(t *testing.T) {
	v := newFixture().open(t, "a")

	v, _ = v.Update(key("t"))
	assert.Equal(t, "b", v.Snapshot().Comparison.TargetID)
	v, _ = v.Update(key("t"))
	assert.Equal(t, "c", v.Snapshot().Comparison.TargetID)
	v, _ = v.Update(key("t"))
	assert.Equal(t, "b", v.Snapshot().Comparison.TargetID, "wraps around")

	v, cmd := v.Update(key("c"))
	require.NotNil(t, cmd)
	assert.True(t, v.Snapshot().Comparison.Pending)
	drain(v, cmd)

	out := v.View()
	assert.Contains(t, out, "Compare against: Regulation")
	assert.Contains(t, out, "50% compliant")
	assert.Contains(t, out, "Compliant: 1")
	assert.Contains(t, out, "Dust control [COMPLIANT]")
	assert.Contains(t, out, "Water reporting [NON COMPLIANT]")
	assert.NotContains(t, out, "Evidence:")
}

func TestView_CompareWithoutTarget(t *testing.T) {
	v := newFixture().open(t, "a")

	v, cmd := v.Update(key("c"))
	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "Select a document to compare against")
}

func TestView_NoCandidates(t *testing.T) {
	f := newFixture()
	f.docs.ListFunc = func(_ context.Context) ([]domain.Document, error) {
		return []domain.Document{{ID: "a"}}, nil
	}
	v := f.open(t, "a")

	assert.Contains(t, v.View(), workspace.NoticeNoCandidates)
	v, _ = v.Update(key("t"))
	assert.Empty(t, v.Snapshot().Comparison.TargetID)
}

func TestView_AskAndSuggestions(t *testing.T) {
	f := newFixture()
	v := f.open(t, "a")

	v, cmd := v.Update(key("2"))
	drain(v, cmd)
	assert.Equal(t, 1, f.qa.asks)

	snap := v.Snapshot()
	require.Len(t, snap.Chat.Turns, 1)
	assert.Equal(t, "Summarize key obligations", snap.Chat.Turns[0].Question)
	assert.Nil(t, snap.Chat.Suggestions)
	assert.Contains(t, v.View(), "A: answer to Summarize key obligations")
}

func TestView_AskInput(t *testing.T) {
	f := newFixture()
	v := f.open(t, "a")

	v, _ = v.Update(key("a"))
	require.True(t, v.Capturing())

	v, _ = v.Update(key("enter"))
	assert.Zero(t, f.qa.asks, "blank questions are not sent")

	v, _ = v.Update(key("hi"))
	v, cmd := v.Update(key("enter"))
	drain(v, cmd)
	assert.Equal(t, 1, f.qa.asks)
	require.Len(t, v.Snapshot().Chat.Turns, 1)
	assert.Equal(t, "hi", v.Snapshot().Chat.Turns[0].Question)

	v, _ = v.Update(key("esc"))
	assert.False(t, v.Capturing())
}

func TestView_EscReturnsToLibrary(t *testing.T) {
	v := newFixture().open(t, "a")

	v, cmd := v.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewLibrary}, cmd())
	assert.Empty(t, v.DocumentID())
}

func TestView_SummaryToggle(t *testing.T) {
	f := newFixture()
	long := strings.Repeat("word ", 60)
	f.docs.GetFunc = func(_ context.Context, id string) (*domain.Document, error) {
		return &domain.Document{ID: id, Analysis: &domain.Analysis{Summary: long}}, nil
	}
	v := f.open(t, "a")

	assert.True(t, v.Snapshot().SummaryTruncated)
	assert.Contains(t, v.View(), "[s] read more")

	v, _ = v.Update(key("s"))
	assert.True(t, v.Snapshot().SummaryExpanded)
	assert.Contains(t, v.View(), "[s] show less")
}
