// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/workspace"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin is the sign-in form.
	ViewLogin ViewType = iota
	// ViewLibrary lists documents and runs uploads.
	ViewLibrary
	// ViewWorkspace shows one document with its viewer, analysis,
	// comparison and chat.
	ViewWorkspace
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewLibrary:
		return "library"
	case ViewWorkspace:
		return "workspace"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// LoginCompleted carries the outcome of a sign-in attempt.
type LoginCompleted struct {
	Session *domain.Session
	Err     error
}

// LoggedOut signals the stored token was cleared.
type LoggedOut struct {
	Err error
}

// AuthRequired signals the server rejected the stored token.
type AuthRequired struct{}

// CredentialsChanged signals the credential file changed on disk.
type CredentialsChanged struct{}

// DocumentOpened asks the app to show a document in the workspace.
type DocumentOpened struct {
	DocumentID string
}

// FilesRead carries files read from disk for an upload batch.
type FilesRead struct {
	Files []domain.UploadFile
	Err   error
}

// WorkspaceEvent wraps the result of a workspace effect.
type WorkspaceEvent struct {
	Event workspace.Event
}

// FromEffects runs each effect as its own command. Results come back
// as WorkspaceEvent messages on the Update loop.
func FromEffects(ctx context.Context, effs []workspace.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effs))
	for _, eff := range effs {
		if eff == nil {
			continue
		}
		cmds = append(cmds, func() tea.Msg {
			return WorkspaceEvent{Event: eff(ctx)}
		})
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
