// Package document provides the single-document workspace view for the TUI:
// the page viewer on the left, analysis, comparison and chat on the right.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/workspace"
)

// View renders one document through a workspace.Orchestrator.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	ctx    context.Context

	orch *workspace.Orchestrator
	ask  *input.Field
	bar  *status.Bar

	width  int
	height int
}

// NewView creates a new document view.
func NewView(s *styles.Styles, deps workspace.Deps) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetHints(km.WorkspaceHelp())

	ask := input.NewField(s, "Ask", "Ask a question about this document")
	ask.Blur()

	return &View{
		styles: s,
		keymap: km,
		ctx:    context.Background(),
		orch:   workspace.NewOrchestrator(deps),
		ask:    ask,
		bar:    bar,
		width:  120,
		height: 40,
	}
}

// WithContext sets the context effects run under.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open makes id the active document.
func (v *View) Open(id string) tea.Cmd {
	v.ask.Reset()
	v.ask.Blur()
	v.bar.Clear()
	return messages.FromEffects(v.ctx, v.orch.OnDocumentIDChanged(id))
}

// Reload refetches everything for the active document.
func (v *View) Reload() tea.Cmd {
	return messages.FromEffects(v.ctx, v.orch.Reload())
}

// Close forgets the active document and releases its payload.
func (v *View) Close() {
	v.orch.OnDocumentIDChanged("")
}

// Apply feeds a workspace event through the orchestrator.
func (v *View) Apply(ev workspace.Event) tea.Cmd {
	return v.after(v.orch.Apply(ev))
}

// after schedules effects and surfaces notices and auth failures.
func (v *View) after(effs []workspace.Effect) tea.Cmd {
	if notices := v.orch.TakeNotices(); len(notices) > 0 {
		v.bar.SetNotice(notices[len(notices)-1])
	}
	cmds := []tea.Cmd{messages.FromEffects(v.ctx, effs)}
	if v.orch.TakeAuthRequired() {
		cmds = append(cmds, func() tea.Msg { return messages.AuthRequired{} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.ask.Focused() {
			return v.handleAskKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		v.orch.PreviousPage()
	case "right", "l":
		v.orch.NextPage()
	case "s":
		v.orch.ToggleSummary()
	case "]":
		v.orch.NextInsights()
	case "[":
		v.orch.PreviousInsights()
	case "t":
		v.cycleTarget()
	case "c":
		effs, err := v.orch.Compare()
		if err != nil {
			v.showError(err)
			return v, nil
		}
		return v, v.after(effs)
	case "a", "/":
		return v, v.ask.Focus()
	case "1", "2", "3":
		snap := v.orch.Snapshot()
		i := int(msg.String()[0] - '1')
		if i < len(snap.Chat.Suggestions) {
			cmd, _ := v.submit(snap.Chat.Suggestions[i])
			return v, cmd
		}
	case "r":
		return v, v.Reload()
	case "esc":
		v.Close()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewLibrary} }
	}
	return v, nil
}

func (v *View) handleAskKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.ask.Blur()
		return v, nil
	case "enter":
		cmd, ok := v.submit(v.ask.Value())
		if ok {
			v.ask.Reset()
		}
		return v, cmd
	}
	var cmd tea.Cmd
	v.ask, cmd = v.ask.Update(msg)
	return v, cmd
}

func (v *View) submit(question string) (tea.Cmd, bool) {
	effs, err := v.orch.Ask(question)
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyQuestion) {
			v.showError(err)
		}
		return nil, false
	}
	return v.after(effs), true
}

// cycleTarget selects the next candidate after the current target.
func (v *View) cycleTarget() {
	snap := v.orch.Snapshot()
	if len(snap.Candidates) == 0 {
		v.bar.SetNotice(workspace.Notice{Kind: workspace.NoticeInfo, Text: workspace.NoticeNoCandidates})
		return
	}
	next := 0
	for i := range snap.Candidates {
		if snap.Candidates[i].ID == snap.Comparison.TargetID {
			next = (i + 1) % len(snap.Candidates)
			break
		}
	}
	if err := v.orch.SelectTarget(snap.Candidates[next].ID); err != nil {
		v.showError(err)
	}
}

func (v *View) showError(err error) {
	v.bar.SetNotice(workspace.Notice{Kind: workspace.NoticeError, Text: errorText(err)})
}

func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoTarget):
		return "Select a document to compare against with [t]."
	case errors.Is(err, domain.ErrQuestionPending):
		return "Wait for the current answer."
	case errors.Is(err, domain.ErrNoDocument):
		return "No document is open."
	default:
		return err.Error()
	}
}

// View renders the workspace.
func (v *View) View() string {
	snap := v.orch.Snapshot()

	var b strings.Builder
	b.WriteString(v.renderHeader(snap))
	b.WriteString("\n\n")

	if snap.DocumentStatus == workspace.StatusFailed {
		b.WriteString(v.styles.Error.Render(documentErrorText(snap)))
		b.WriteString("\n\n")
		b.WriteString(v.bar.View())
		return b.String()
	}

	half := max(v.width/2-2, 20)
	left := v.styles.Panel.Width(half).Render(v.renderViewer(snap))
	right := v.styles.Panel.Width(half).Render(v.renderSidebar(snap))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderHeader(snap workspace.View) string {
	if snap.Document == nil {
		return v.styles.Title.Render("Loading document...")
	}
	title := v.styles.Title.Render(snap.Document.DisplayTitle())
	meta := v.styles.Muted.Render(fmt.Sprintf("  %s  %s",
		snap.Document.SizeLabel(), snap.Document.CreatedAt.Format("2006-01-02")))
	return title + meta
}

func documentErrorText(snap workspace.View) string {
	switch snap.DocumentFault {
	case domain.FailureNotFound:
		return "Document not found. Press [esc] to go back."
	case domain.FailureAuth:
		return "Sign in required."
	default:
		return fmt.Sprintf("Could not load document: %v. Press [r] to retry.", snap.DocumentErr)
	}
}

func (v *View) renderViewer(snap workspace.View) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Document"))
	b.WriteString("\n\n")

	switch snap.Viewer.Status {
	case workspace.StatusReady:
		lines := strings.Split(snap.Viewer.Text, "\n")
		if limit := max(v.height-10, 5); len(lines) > limit {
			lines = lines[:limit]
		}
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Page %d of %d", snap.Viewer.Page, snap.Viewer.PageCount)))
	case workspace.StatusFailed:
		b.WriteString(v.styles.Error.Render("Could not display this document."))
		if snap.Viewer.Err != nil {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(snap.Viewer.Err.Error()))
		}
	default:
		b.WriteString(v.styles.Muted.Render("Loading document..."))
	}
	return b.String()
}

func (v *View) renderSidebar(snap workspace.View) string {
	sections := []string{
		v.renderAnalysis(snap),
		v.renderComparison(snap),
		v.renderChat(snap),
	}
	return strings.Join(sections, "\n\n")
}

func (v *View) renderAnalysis(snap workspace.View) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Summary"))
	b.WriteString("\n")
	if snap.Document == nil {
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	}
	b.WriteString(snap.Summary)
	if snap.SummaryTruncated {
		hint := "[s] read more"
		if snap.SummaryExpanded {
			hint = "[s] show less"
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render(hint))
	}

	b.WriteString("\n\n")
	if snap.InsightPages == 0 {
		b.WriteString(v.styles.Subtitle.Render("Key Insights"))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("No key points available."))
		return b.String()
	}
	b.WriteString(v.styles.Subtitle.Render(
		fmt.Sprintf("Key Insights (%d/%d)", snap.Insights.Number, snap.InsightPages)))
	for i, item := range snap.Insights.Items {
		b.WriteString(fmt.Sprintf("\nInsight %d: %s", snap.Insights.FirstIndex+i+1, item))
	}
	if snap.InsightPages > 1 {
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[ ] previous/next"))
	}
	return b.String()
}

func (v *View) renderComparison(snap workspace.View) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Compliance Check"))
	b.WriteString("\n")

	if snap.CandidatesStatus == workspace.StatusReady && len(snap.Candidates) == 0 {
		b.WriteString(v.styles.Muted.Render(workspace.NoticeNoCandidates))
		return b.String()
	}

	target := "none, press [t] to choose"
	for i := range snap.Candidates {
		if snap.Candidates[i].ID == snap.Comparison.TargetID {
			target = snap.Candidates[i].DisplayTitle()
		}
	}
	b.WriteString("Compare against: " + target)

	switch {
	case snap.Comparison.Pending:
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Comparing..."))
	case snap.Comparison.Result != nil:
		b.WriteString("\n")
		b.WriteString(v.renderResult(snap.Comparison.Result))
	case snap.Comparison.Err != nil:
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(workspace.NoticeComparisonError))
	}
	return b.String()
}

func (v *View) renderResult(r *domain.ComparisonResult) string {
	var b strings.Builder
	b.WriteString(v.styles.ForScore(r.ComplianceScore).Bold(true).Render(r.ScoreLabel()))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(strings.Join(r.Summary.Chips(), "  ")))
	for _, e := range r.Evaluations {
		b.WriteString("\n\n")
		b.WriteString(v.styles.ForStatus(e.Status).Render("● " + e.Requirement + " [" + e.Status.Label() + "]"))
		if e.Rationale != "" {
			b.WriteString("\n  " + e.Rationale)
		}
		if len(e.Evidence) > 0 {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render("  Evidence: " + strings.Join(e.Evidence, "; ")))
		}
	}
	return b.String()
}

func (v *View) renderChat(snap workspace.View) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Ask about this document"))

	if snap.Chat.HistoryStatus == workspace.StatusLoading {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Loading conversation..."))
	}
	for _, t := range snap.Chat.Turns {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Bold(true).Render("Q: " + t.Question))
		b.WriteString("\nA: " + t.Answer)
	}
	if snap.Chat.Asking {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Bold(true).Render("Q: " + snap.Chat.PendingQuestion))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Thinking..."))
	}
	for i, s := range snap.Chat.Suggestions {
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render(fmt.Sprintf("[%d] %s", i+1, s)))
	}

	b.WriteString("\n\n")
	b.WriteString(v.ask.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ask.SetWidth(max(width/2-4, 20))
	v.bar.SetWidth(width)
}

// SetAccount shows the signed-in user in the status bar.
func (v *View) SetAccount(account string) {
	v.bar.SetAccount(account)
}

// Capturing reports whether typed keys go to the question input.
func (v *View) Capturing() bool {
	return v.ask.Focused()
}

// Snapshot returns the current workspace state.
func (v *View) Snapshot() workspace.View {
	return v.orch.Snapshot()
}

// DocumentID returns the active document id.
func (v *View) DocumentID() string {
	return v.orch.DocumentID()
}
