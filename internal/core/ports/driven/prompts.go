package driven

// SuggestionStore provides the prompts offered when a conversation is empty.
// Implementations may load them from a user-editable file or embed defaults.
type SuggestionStore interface {
	// Suggestions returns the prompts in display order.
	// It never returns an empty list; defaults are used as a fallback.
	Suggestions() []string

	// Reload clears any cached prompts, forcing a fresh load on next access.
	Reload()
}
