package login

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

type mockAuth struct {
	LoginFunc func(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)
	calls     int
}

func (m *mockAuth) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	m.calls++
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &domain.Session{Token: "tok", User: req.Email}, nil
}

func (m *mockAuth) Logout() error       { return nil }
func (m *mockAuth) Account() string     { return "" }
func (m *mockAuth) Authenticated() bool { return false }

func typeText(v *View, s string) *View {
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return v
}

func enter(v *View) (*View, tea.Cmd) {
	return v.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestView_SubmitSendsCredentials(t *testing.T) {
	auth := &mockAuth{}
	v := NewView(nil, auth)

	v = typeText(v, " ada@example.com ")
	v, cmd := enter(v)
	assert.Nil(t, cmd, "enter on email moves to password")

	v = typeText(v, "secret")
	v, cmd = enter(v)
	require.NotNil(t, cmd)
	assert.True(t, v.Submitting())

	msg, ok := cmd().(messages.LoginCompleted)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, "ada@example.com", msg.Session.User)
	assert.Equal(t, 1, auth.calls)

	v, _ = v.Update(msg)
	assert.False(t, v.Submitting())
	assert.NoError(t, v.Err())
}

func TestView_MissingFieldsRejectedLocally(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"both empty", "", ""},
		{"no password", "ada@example.com", ""},
		{"blank email", "   ", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuth{}
			v := NewView(nil, auth)
			if tt.email != "" {
				v = typeText(v, tt.email)
			}
			v, _ = enter(v)
			if tt.password != "" {
				v = typeText(v, tt.password)
			}
			v, cmd := enter(v)

			assert.Nil(t, cmd)
			assert.ErrorIs(t, v.Err(), domain.ErrMissingCredentials)
			assert.Zero(t, auth.calls)
			assert.Contains(t, v.View(), "Email and password are required.")
		})
	}
}

func TestView_LoginFailure(t *testing.T) {
	auth := &mockAuth{LoginFunc: func(_ context.Context, _ domain.LoginRequest) (*domain.Session, error) {
		return nil, domain.ErrUnauthorized
	}}
	v := NewView(nil, auth)
	v = typeText(v, "ada@example.com")
	v, _ = enter(v)
	v = typeText(v, "wrong")
	v, cmd := enter(v)
	require.NotNil(t, cmd)

	v, _ = v.Update(cmd())
	assert.ErrorIs(t, v.Err(), domain.ErrUnauthorized)
	assert.Contains(t, v.View(), "Invalid email or password.")
}

func TestView_KeysIgnoredWhileSubmitting(t *testing.T) {
	v := NewView(nil, &mockAuth{})
	v = typeText(v, "ada@example.com")
	v, _ = enter(v)
	v = typeText(v, "secret")
	v, _ = enter(v)
	require.True(t, v.Submitting())

	_, cmd := enter(v)
	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "Signing in...")
}

func TestView_ResetShowsMessage(t *testing.T) {
	v := NewView(nil, &mockAuth{})
	v = typeText(v, "ada@example.com")

	v.Reset(SessionExpired)
	out := v.View()
	assert.Contains(t, out, SessionExpired)
	assert.NotContains(t, out, "ada@example.com")
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrMissingCredentials, "Email and password are required."},
		{domain.ErrUnauthorized, "Invalid email or password."},
		{domain.ErrTransport, "Could not reach the server."},
		{errors.New("boom"), "Sign in failed: boom"},
	}

	for _, tt := range tests {
		assert.Contains(t, ErrorText(tt.err), tt.want)
	}
}
