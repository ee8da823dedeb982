package workspace

import (
	"context"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
)

// Conversation is one document's question thread.
//
// History is loaded once per document. Questions are serialized: a
// second Ask while one is pending fails with domain.ErrQuestionPending.
// A failed answer still records the question with domain.FallbackAnswer.
type Conversation struct {
	svc driving.QAService

	documentID    string
	epoch         uint64
	historyStatus Status
	historyErr    error
	history       []domain.ChatTurn
	local         []domain.ChatTurn
	pending       string
	asking        bool
}

// NewConversation creates an empty conversation.
func NewConversation(svc driving.QAService) *Conversation {
	return &Conversation{svc: svc}
}

// HistoryLoaded carries the stored thread for a document.
type HistoryLoaded struct {
	epoch      uint64
	DocumentID string
	Turns      []domain.ChatTurn
	Err        error
}

func (HistoryLoaded) isEvent() {}

// AnswerReceived carries the outcome of one question.
type AnswerReceived struct {
	epoch      uint64
	DocumentID string
	Question   string
	Answer     string
	Err        error
}

func (AnswerReceived) isEvent() {}

// Open resets the thread for documentID and loads its history.
func (c *Conversation) Open(documentID string) Effect {
	c.epoch++
	c.documentID = documentID
	c.history = nil
	c.local = nil
	c.historyErr = nil
	c.pending = ""
	c.asking = false

	if documentID == "" || c.svc == nil {
		c.historyStatus = StatusIdle
		return nil
	}
	c.historyStatus = StatusLoading

	epoch, svc := c.epoch, c.svc
	return func(ctx context.Context) Event {
		turns, err := svc.History(ctx, documentID)
		return HistoryLoaded{epoch: epoch, DocumentID: documentID, Turns: turns, Err: err}
	}
}

// ApplyHistory handles a HistoryLoaded event and reports whether it was current.
func (c *Conversation) ApplyHistory(ev HistoryLoaded) bool {
	if ev.epoch != c.epoch || ev.DocumentID != c.documentID {
		return false
	}
	if ev.Err != nil {
		c.historyStatus = StatusFailed
		c.historyErr = ev.Err
		return true
	}
	c.historyStatus = StatusReady
	c.history = append([]domain.ChatTurn(nil), ev.Turns...)
	return true
}

// Ask submits a question. Blank questions are rejected without a request.
func (c *Conversation) Ask(question string) (Effect, error) {
	if err := domain.ValidateQuestion(question); err != nil {
		return nil, err
	}
	if c.asking {
		return nil, domain.ErrQuestionPending
	}
	if c.documentID == "" {
		return nil, domain.ErrNoDocument
	}
	if c.svc == nil {
		return nil, domain.ErrNotImplemented
	}
	c.asking = true
	c.pending = question

	epoch, id, svc := c.epoch, c.documentID, c.svc
	return func(ctx context.Context) Event {
		answer, err := svc.Ask(ctx, id, question)
		return AnswerReceived{epoch: epoch, DocumentID: id, Question: question, Answer: answer, Err: err}
	}, nil
}

// ApplyAnswer appends the turn and reports whether the event was current.
func (c *Conversation) ApplyAnswer(ev AnswerReceived) bool {
	if ev.epoch != c.epoch || ev.DocumentID != c.documentID || !c.asking {
		return false
	}
	c.asking = false
	c.pending = ""
	answer := ev.Answer
	if ev.Err != nil {
		answer = domain.FallbackAnswer
	}
	c.local = append(c.local, domain.ChatTurn{Question: ev.Question, Answer: answer})
	return true
}

// Turns returns the thread: stored history followed by turns asked
// in this session.
func (c *Conversation) Turns() []domain.ChatTurn {
	out := make([]domain.ChatTurn, 0, len(c.history)+len(c.local))
	out = append(out, c.history...)
	return append(out, c.local...)
}

// DocumentID returns the document the thread belongs to.
func (c *Conversation) DocumentID() string { return c.documentID }

// Asking reports whether a question is awaiting an answer.
func (c *Conversation) Asking() bool { return c.asking }

// PendingQuestion returns the question awaiting an answer.
func (c *Conversation) PendingQuestion() string { return c.pending }

// HistoryStatus returns the history load state.
func (c *Conversation) HistoryStatus() Status { return c.historyStatus }

// HistoryErr returns the history load failure.
func (c *Conversation) HistoryErr() error { return c.historyErr }
