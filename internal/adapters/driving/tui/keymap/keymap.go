// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Refresh reloads the current view from the server.
	Refresh key.Binding

	// Upload starts an upload batch.
	Upload key.Binding

	// Logout clears the stored token.
	Logout key.Binding

	// NextPage moves the viewer forward.
	NextPage key.Binding

	// PrevPage moves the viewer back.
	PrevPage key.Binding

	// ToggleSummary expands or collapses a long summary.
	ToggleSummary key.Binding

	// NextInsights shows the next page of key points.
	NextInsights key.Binding

	// PrevInsights shows the previous page of key points.
	PrevInsights key.Binding

	// Target cycles the comparison target.
	Target key.Binding

	// Compare runs the comparison.
	Compare key.Binding

	// Ask focuses the question input.
	Ask key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "sign out"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		ToggleSummary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "read more"),
		),
		NextInsights: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next insights"),
		),
		PrevInsights: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev insights"),
		),
		Target: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "target"),
		),
		Compare: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compare"),
		),
		Ask: key.NewBinding(
			key.WithKeys("a", "/"),
			key.WithHelp("a", "ask"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// LibraryHelp returns keybindings for the library view.
func (k *KeyMap) LibraryHelp() []key.Binding {
	return []key.Binding{k.Select, k.Upload, k.Refresh, k.Logout, k.Quit}
}

// WorkspaceHelp returns keybindings for the workspace view.
func (k *KeyMap) WorkspaceHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Target, k.Compare, k.Ask, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Upload, k.Refresh, k.Logout},
		{k.PrevPage, k.NextPage, k.ToggleSummary, k.PrevInsights, k.NextInsights},
		{k.Target, k.Compare, k.Ask},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
