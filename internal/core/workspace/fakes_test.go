package workspace

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
)

type fakeDocs struct {
	GetFunc      func(id string) (*domain.Document, error)
	ListFunc     func() ([]domain.Document, error)
	UploadFunc   func(f domain.UploadFile) (*domain.Document, error)
	DownloadFunc func(id string) (io.ReadCloser, string, error)

	mu      sync.Mutex
	uploads []string
}

func (f *fakeDocs) List(context.Context) ([]domain.Document, error) {
	if f.ListFunc == nil {
		return nil, nil
	}
	return f.ListFunc()
}

func (f *fakeDocs) Get(_ context.Context, id string) (*domain.Document, error) {
	if f.GetFunc == nil {
		return &domain.Document{ID: id, Title: "Doc " + id}, nil
	}
	return f.GetFunc(id)
}

func (f *fakeDocs) Upload(_ context.Context, file domain.UploadFile) (*domain.Document, error) {
	f.mu.Lock()
	f.uploads = append(f.uploads, file.Name)
	f.mu.Unlock()
	if f.UploadFunc == nil {
		return &domain.Document{ID: "id-" + file.Name, Filename: file.Name}, nil
	}
	return f.UploadFunc(file)
}

func (f *fakeDocs) DownloadBinary(_ context.Context, id string) (io.ReadCloser, string, error) {
	if f.DownloadFunc == nil {
		return io.NopCloser(strings.NewReader("payload " + id)), "application/pdf", nil
	}
	return f.DownloadFunc(id)
}

type fakeComparisons struct {
	CompareFunc func(src, tgt string) (*domain.ComparisonResult, error)
	calls       int
}

func (f *fakeComparisons) Compare(_ context.Context, src, tgt string) (*domain.ComparisonResult, error) {
	f.calls++
	if f.CompareFunc == nil {
		return resultFor(src, tgt, 0.5), nil
	}
	return f.CompareFunc(src, tgt)
}

func resultFor(src, tgt string, score float64) *domain.ComparisonResult {
	evals := []domain.Evaluation{
		{Requirement: "r1", Status: domain.StatusCompliant},
		{Requirement: "r2", Status: domain.StatusCompliant},
		{Requirement: "r3", Status: domain.StatusPartial},
		{Requirement: "r4", Status: domain.StatusNonCompliant},
	}
	return &domain.ComparisonResult{
		ID:               "cmp-" + tgt,
		SourceDocumentID: src,
		TargetDocumentID: tgt,
		ComplianceScore:  score,
		Summary:          domain.TallyEvaluations(evals),
		Evaluations:      evals,
	}
}

type fakeQA struct {
	HistoryFunc func(id string) ([]domain.ChatTurn, error)
	AskFunc     func(id, q string) (string, error)
	asks        int
}

func (f *fakeQA) History(_ context.Context, id string) ([]domain.ChatTurn, error) {
	if f.HistoryFunc == nil {
		return nil, nil
	}
	return f.HistoryFunc(id)
}

func (f *fakeQA) Ask(_ context.Context, id, q string) (string, error) {
	f.asks++
	if err := domain.ValidateQuestion(q); err != nil {
		return "", err
	}
	if f.AskFunc == nil {
		return "answer to " + q, nil
	}
	return f.AskFunc(id, q)
}

// fakePayloads counts acquisitions and releases per handle.
type fakePayloads struct {
	mu       sync.Mutex
	acquired int
	released map[string]int
}

func newFakePayloads() *fakePayloads {
	return &fakePayloads{released: make(map[string]int)}
}

func (f *fakePayloads) Acquire(_ context.Context, id, mediaType string, r io.Reader) (driven.PayloadHandle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquired++
	return &fakeHandle{store: f, id: id, mediaType: mediaType, name: fmt.Sprintf("%s#%d", id, f.acquired), data: string(data)}, nil
}

func (f *fakePayloads) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.acquired
	for _, c := range f.released {
		if c > 0 {
			n--
		}
	}
	return n
}

func (f *fakePayloads) releases(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released[name]
}

type fakeHandle struct {
	store     *fakePayloads
	id        string
	mediaType string
	name      string
	data      string
}

func (h *fakeHandle) DocumentID() string { return h.id }
func (h *fakeHandle) Path() string       { return h.name }
func (h *fakeHandle) MediaType() string  { return h.mediaType }

func (h *fakeHandle) Release() error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.released[h.name]++
	if h.store.released[h.name] > 1 {
		return domain.ErrHandleReleased
	}
	return nil
}

// fakeDecoder returns n pages for every payload.
type fakeDecoder struct {
	pages int
	err   error
}

func (d *fakeDecoder) Decode(_ context.Context, h driven.PayloadHandle) ([]domain.RenderedPage, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.pages == 0 {
		return nil, domain.ErrEmptyPayload
	}
	pages := make([]domain.RenderedPage, d.pages)
	for i := range pages {
		pages[i] = domain.RenderedPage{Number: i + 1, Text: fmt.Sprintf("%s page %d", h.DocumentID(), i+1)}
	}
	return pages, nil
}

type fakeSuggestions struct{ prompts []string }

func (f fakeSuggestions) Suggestions() []string { return f.prompts }
func (f fakeSuggestions) Reload()               {}

// runAll executes effects synchronously and returns their events.
func runAll(effs []Effect) []Event {
	events := make([]Event, 0, len(effs))
	for _, e := range effs {
		events = append(events, e(context.Background()))
	}
	return events
}

// applyAll applies events in order, running follow-up effects inline.
func applyAll(a Applier, events []Event) {
	for _, ev := range events {
		applyAll(a, runAll(a.Apply(ev)))
	}
}

// pick returns the first event of type T.
func pick[T Event](events []Event) T {
	for _, ev := range events {
		if t, ok := ev.(T); ok {
			return t
		}
	}
	var zero T
	return zero
}
