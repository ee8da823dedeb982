// Package library provides the document list and upload view for the TUI.
package library

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driven/payload"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mineguard-cli/internal/core/workspace"
)

// View lists the user's documents and runs upload batches.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	ctx    context.Context
	auth   driving.AuthService

	library *workspace.Library
	list    *list.DocumentList
	bar     *status.Bar
	paths   *input.Field

	prompting bool
	reading   bool
	width     int
	height    int
}

// NewView creates a new library view.
func NewView(s *styles.Styles, docs driving.DocumentService, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetHints(km.LibraryHelp())

	paths := input.NewField(s, "Files", "path/to/file.pdf other.pdf")
	paths.Blur()

	return &View{
		styles:  s,
		keymap:  km,
		ctx:     context.Background(),
		auth:    auth,
		library: workspace.NewLibrary(docs),
		list:    list.NewDocumentList(s),
		bar:     bar,
		paths:   paths,
	}
}

// WithContext sets the context effects run under.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the document list.
func (v *View) Init() tea.Cmd {
	return v.Refresh()
}

// Refresh reloads the document list from the server.
func (v *View) Refresh() tea.Cmd {
	eff := v.library.Refresh()
	if eff == nil {
		return nil
	}
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage("Loading documents...")
	return messages.FromEffects(v.ctx, []workspace.Effect{eff})
}

// Apply feeds a library event through the state machine.
func (v *View) Apply(ev workspace.Event) tea.Cmd {
	effs := v.library.Apply(ev)
	v.sync()

	cmds := []tea.Cmd{messages.FromEffects(v.ctx, effs)}
	if v.library.TakeAuthRequired() {
		cmds = append(cmds, func() tea.Msg { return messages.AuthRequired{} })
	}
	return tea.Batch(cmds...)
}

func (v *View) sync() {
	v.list.SetDocuments(v.library.Documents())

	notices := v.library.TakeNotices()
	switch {
	case len(notices) > 0:
		v.bar.SetNotice(notices[len(notices)-1])
	case v.library.Uploading():
		i, n := v.library.UploadProgress()
		v.bar.SetState(status.StateLoading)
		v.bar.SetMessage(fmt.Sprintf("Uploading file %d of %d... [esc] cancel", i+1, n))
	case v.library.Status() == workspace.StatusFailed:
		v.bar.SetState(status.StateError)
		v.bar.SetMessage(v.library.Err().Error())
	case v.library.Status() == workspace.StatusReady:
		v.bar.Clear()
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.prompting {
			return v.handlePromptKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.FilesRead:
		v.reading = false
		return v, v.startUpload(msg)

	case messages.ErrorOccurred:
		v.bar.SetState(status.StateError)
		v.bar.SetMessage(msg.Err.Error())
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	case "enter":
		doc := v.list.SelectedDocument()
		if doc == nil {
			return v, nil
		}
		id := doc.ID
		return v, func() tea.Msg { return messages.DocumentOpened{DocumentID: id} }
	case "u":
		if v.library.Uploading() || v.reading {
			v.bar.SetNotice(workspace.Notice{Kind: workspace.NoticeInfo, Text: "An upload is already running."})
			return v, nil
		}
		v.prompting = true
		v.paths.Reset()
		return v, v.paths.Focus()
	case "esc":
		if v.library.Uploading() {
			v.library.Cancel()
			v.bar.SetNotice(workspace.Notice{Kind: workspace.NoticeInfo, Text: "Upload cancelled."})
		}
		return v, nil
	case "r":
		return v, v.Refresh()
	case "L":
		return v, v.logout()
	case "q":
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

func (v *View) handlePromptKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.prompting = false
		v.paths.Blur()
		return v, nil
	case "enter":
		paths := strings.Fields(v.paths.Value())
		v.prompting = false
		v.paths.Blur()
		if len(paths) == 0 {
			return v, nil
		}
		v.reading = true
		return v, ReadFiles(paths)
	}
	var cmd tea.Cmd
	v.paths, cmd = v.paths.Update(msg)
	return v, cmd
}

func (v *View) startUpload(msg messages.FilesRead) tea.Cmd {
	if msg.Err != nil {
		v.bar.SetState(status.StateError)
		v.bar.SetMessage(msg.Err.Error())
		return nil
	}
	eff, err := v.library.Upload(msg.Files)
	if err != nil {
		v.bar.SetState(status.StateError)
		v.bar.SetMessage(err.Error())
		return nil
	}
	v.sync()
	return messages.FromEffects(v.ctx, []workspace.Effect{eff})
}

func (v *View) logout() tea.Cmd {
	if v.auth == nil {
		return nil
	}
	auth := v.auth
	return func() tea.Msg {
		return messages.LoggedOut{Err: auth.Logout()}
	}
}

// ReadFiles returns a command that reads local files into an upload batch.
func ReadFiles(paths []string) tea.Cmd {
	return func() tea.Msg {
		files, err := payload.ReadFiles(paths)
		return messages.FilesRead{Files: files, Err: err}
	}
}

// View renders the library.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("MineGuard"))
	b.WriteString("\n\n")

	switch {
	case v.library.Status() == workspace.StatusLoading && v.list.Count() == 0:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.library.Status() == workspace.StatusFailed && v.list.Count() == 0:
		b.WriteString(v.styles.Error.Render("Could not load documents. Press [r] to retry."))
	default:
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")

	if v.prompting {
		b.WriteString(v.paths.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] upload  [esc] cancel"))
		b.WriteString("\n\n")
	}

	b.WriteString(v.bar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, max(height-6, 1))
	v.paths.SetWidth(width)
	v.bar.SetWidth(width)
}

// SetAccount shows the signed-in user in the status bar.
func (v *View) SetAccount(account string) {
	v.bar.SetAccount(account)
}

// Capturing reports whether typed keys go to the path prompt.
func (v *View) Capturing() bool {
	return v.prompting
}

// Library returns the underlying state machine.
func (v *View) Library() *workspace.Library {
	return v.library
}

// Documents returns the documents currently listed.
func (v *View) Documents() []domain.Document {
	return v.list.Documents()
}
