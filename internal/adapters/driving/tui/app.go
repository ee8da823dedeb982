package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/views/library"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/mineguard-cli/internal/core/workspace"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context workspace effects run under.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// loginView is the sign-in form.
	loginView *login.View

	// libraryView lists documents and runs uploads.
	libraryView *library.View

	// documentView shows the active document.
	documentView *document.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// resumeView is where to return after signing in again.
	resumeView messages.ViewType

	// credentials delivers credential file changes, when watched.
	credentials <-chan struct{}

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// It starts at the library when a token is already held.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		loginView:   login.NewView(s, ports.Auth),
		libraryView: library.NewView(s, ports.Documents, ports.Auth),
		documentView: document.NewView(s, workspace.Deps{
			Documents:   ports.Documents,
			Comparisons: ports.Comparisons,
			QA:          ports.QA,
			Payloads:    ports.Payloads,
			Decoder:     ports.Decoder,
			Suggestions: ports.Suggestions,
		}),
		currentView: messages.ViewLogin,
		resumeView:  messages.ViewLibrary,
	}
	if ports.Auth.Authenticated() {
		a.currentView = messages.ViewLibrary
	}
	a.setAccount()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	a.libraryView.WithContext(ctx)
	a.documentView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("MineGuard"),
		a.watchCredentials(),
	}
	if a.currentView == messages.ViewLibrary {
		cmds = append(cmds, a.libraryView.Init())
	} else {
		cmds = append(cmds, a.loginView.Init())
	}
	return tea.Batch(cmds...)
}

// watchCredentials subscribes to credential changes made by other
// processes, such as `mineguard login` in another terminal.
func (a *App) watchCredentials() tea.Cmd {
	if a.ports.WatchCredentials == nil {
		return nil
	}
	if a.credentials == nil {
		ch, err := a.ports.WatchCredentials(a.ctx)
		if err != nil {
			logger.Warn("watching credentials: %v", err)
			return nil
		}
		a.credentials = ch
	}
	ch := a.credentials
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.CredentialsChanged{}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.WorkspaceEvent:
		switch msg.Event.(type) {
		case workspace.ListLoaded, workspace.UploadFinished:
			return a, a.libraryView.Apply(msg.Event)
		default:
			return a, a.documentView.Apply(msg.Event)
		}

	case messages.FilesRead:
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd

	case messages.DocumentOpened:
		a.currentView = messages.ViewWorkspace
		return a, a.documentView.Open(msg.DocumentID)

	case messages.ViewChanged:
		return a, a.navigate(msg.View)

	case messages.AuthRequired:
		if a.currentView == messages.ViewLogin {
			return a, nil
		}
		if a.currentView == messages.ViewWorkspace || a.currentView == messages.ViewLibrary {
			a.resumeView = a.currentView
		}
		logger.Debug("tui: session rejected, signing in again")
		a.loginView.Reset(login.SessionExpired)
		a.currentView = messages.ViewLogin
		return a, a.loginView.Init()

	case messages.LoginCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil || a.currentView != messages.ViewLogin {
			return a, cmd
		}
		return a, tea.Batch(cmd, a.resume())

	case messages.CredentialsChanged:
		cmds := []tea.Cmd{a.watchCredentials()}
		if a.currentView == messages.ViewLogin && a.ports.Auth.Authenticated() && !a.loginView.Submitting() {
			cmds = append(cmds, a.resume())
		}
		a.setAccount()
		return a, tea.Batch(cmds...)

	case messages.LoggedOut:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.documentView.Close()
		a.resumeView = messages.ViewLibrary
		a.loginView.Reset("")
		a.currentView = messages.ViewLogin
		a.setAccount()
		return a, a.loginView.Init()

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, a.quit()
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case messages.ViewWorkspace:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, a.quit()
	}

	if msg.String() == "?" && a.currentView != messages.ViewLogin && !a.capturing() {
		if a.currentView == messages.ViewHelp {
			a.currentView = a.resumeView
		} else {
			a.resumeView = a.currentView
			a.currentView = messages.ViewHelp
		}
		return a, nil
	}

	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case messages.ViewWorkspace:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = a.resumeView
		}
	}
	return a, cmd
}

// navigate switches view. Leaving the workspace releases the document.
func (a *App) navigate(view messages.ViewType) tea.Cmd {
	prev := a.currentView
	a.currentView = view
	if prev == messages.ViewWorkspace && view != messages.ViewWorkspace && view != messages.ViewHelp {
		a.documentView.Close()
	}
	if view == messages.ViewLibrary && prev == messages.ViewWorkspace {
		return a.libraryView.Refresh()
	}
	return nil
}

// resume returns to the view that was interrupted by signing in and
// refetches its data with the new token.
func (a *App) resume() tea.Cmd {
	a.setAccount()
	a.currentView = a.resumeView
	if a.currentView == messages.ViewWorkspace && a.documentView.DocumentID() != "" {
		return a.documentView.Reload()
	}
	a.currentView = messages.ViewLibrary
	return a.libraryView.Refresh()
}

func (a *App) setAccount() {
	account := a.ports.Auth.Account()
	a.libraryView.SetAccount(account)
	a.documentView.SetAccount(account)
}

func (a *App) capturing() bool {
	switch a.currentView {
	case messages.ViewLibrary:
		return a.libraryView.Capturing()
	case messages.ViewWorkspace:
		return a.documentView.Capturing()
	case messages.ViewLogin:
		return true
	}
	return false
}

// quit releases the active document before exiting.
func (a *App) quit() tea.Cmd {
	a.documentView.Close()
	return tea.Quit
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLogin:
		return a.loginView.View()
	case messages.ViewLibrary:
		return a.libraryView.View()
	case messages.ViewWorkspace:
		return a.documentView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.libraryView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Global:
  ?           Toggle help
  ctrl+c      Quit

Library:
  j/k, ↑/↓    Navigate documents
  enter       Open document
  u           Upload files (space separated paths)
  esc         Cancel running upload
  r           Refresh
  L           Sign out
  q           Quit

Document:
  h/l, ←/→    Previous/next page
  s           Expand/collapse summary
  [ ]         Previous/next insights
  t           Choose comparison target
  c           Run compliance check
  a, /        Ask a question
  1-3         Ask a suggested question
  r           Reload
  esc         Back to library

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.loginView.SetDimensions(width, height)
	a.libraryView.SetDimensions(width, height)
	a.documentView.SetDimensions(width, height)
}
