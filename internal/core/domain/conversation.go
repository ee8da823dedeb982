package domain

import "strings"

// FallbackAnswer is recorded when a question could not be answered,
// so the user's question is never silently lost.
const FallbackAnswer = "Sorry, I couldn't answer that."

// SuggestedPrompts are offered when a thread is empty.
var SuggestedPrompts = []string{
	"What are the compliance risks?",
	"Summarize key obligations",
	"Are penalties mentioned?",
}

// ChatTurn is one question/answer pair in a document-grounded conversation.
type ChatTurn struct {
	Question string
	Answer   string
}

// ValidateQuestion rejects empty or whitespace-only questions.
func ValidateQuestion(q string) error {
	if strings.TrimSpace(q) == "" {
		return ErrEmptyQuestion
	}
	return nil
}
