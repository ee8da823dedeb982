// Package login provides the sign-in view for the TUI.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
)

// SessionExpired is shown when the server rejected the stored token.
const SessionExpired = "Your session has expired. Please sign in again."

// View is the sign-in form.
type View struct {
	styles *styles.Styles
	auth   driving.AuthService
	ctx    context.Context

	email    *input.Field
	password *input.Field
	focus    int

	submitting bool
	message    string
	err        error
	width      int
	height     int
}

// NewView creates a new login view.
func NewView(s *styles.Styles, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:   s,
		auth:     auth,
		ctx:      context.Background(),
		email:    input.NewField(s, "Email", "you@example.com"),
		password: input.NewPasswordField(s, "Password"),
	}
	v.password.Blur()
	return v
}

// WithContext sets the context used for sign-in requests.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.email.Init()
}

// Reset clears the form and shows message above it.
func (v *View) Reset(message string) {
	v.email.Reset()
	v.password.Reset()
	v.setFocus(0)
	v.submitting = false
	v.message = message
	v.err = nil
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LoginCompleted:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			v.password.Reset()
			v.setFocus(1)
			return v, nil
		}
		v.err = nil
		v.message = ""
		v.password.Reset()
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		v.setFocus(1 - v.focus)
		return v, nil
	case "enter":
		if v.focus == 0 {
			v.setFocus(1)
			return v, nil
		}
		return v, v.submit()
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *View) setFocus(i int) {
	v.focus = i
	if i == 0 {
		v.password.Blur()
		v.email.Focus()
	} else {
		v.email.Blur()
		v.password.Focus()
	}
}

// submit validates the form locally before any request is made.
func (v *View) submit() tea.Cmd {
	req := domain.LoginRequest{
		Email:    strings.TrimSpace(v.email.Value()),
		Password: v.password.Value(),
	}
	if err := req.Validate(); err != nil {
		v.err = err
		return nil
	}
	if v.auth == nil {
		v.err = domain.ErrNotImplemented
		return nil
	}

	v.submitting = true
	v.err = nil
	auth, ctx := v.auth, v.ctx
	return func() tea.Msg {
		session, err := auth.Login(ctx, req)
		return messages.LoginCompleted{Session: session, Err: err}
	}
}

// View renders the login form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("MineGuard"))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Sign in to your workspace"))
	b.WriteString("\n\n")

	if v.message != "" {
		b.WriteString(v.styles.Warning.Render(v.message))
		b.WriteString("\n\n")
	}

	b.WriteString(v.email.View())
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n\n")

	switch {
	case v.submitting:
		b.WriteString(v.styles.Muted.Render("Signing in..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(ErrorText(v.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] switch field  [enter] sign in  [ctrl+c] quit"))
	return b.String()
}

// ErrorText renders a sign-in failure for the user.
func ErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return "Email and password are required."
	case domain.Classify(err) == domain.FailureAuth:
		return "Invalid email or password."
	case domain.Classify(err) == domain.FailureTransport:
		return "Could not reach the server. Check your connection and try again."
	default:
		return fmt.Sprintf("Sign in failed: %v", err)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.email.SetWidth(min(width, 80))
	v.password.SetWidth(min(width, 80))
}

// Submitting reports whether a sign-in request is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
