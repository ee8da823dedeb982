// Package workspace coordinates the state of an open document.
//
// All state lives on a single logical thread. Methods that need the
// network return an Effect instead of blocking; the caller runs the
// effect off the loop and feeds the resulting Event back through Apply.
// Every event carries the token that was current when its effect was
// created, and Apply drops events whose token has since been superseded.
//
// The bubbletea TUI drives this loop with tea.Cmd values; Run drives it
// for non-interactive callers and tests.
package workspace
