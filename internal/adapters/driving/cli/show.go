package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mineguard-cli/internal/core/workspace"
)

var showCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Print a document page with its analysis",
	Long: `Load a document the way the workspace does: metadata and analysis,
the rendered page text, the comparison candidates, and the conversation.

Examples:
  mineguard show 42
  mineguard show 42 --page 3`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

// Flags for show.
var (
	showPage        int
	showFullSummary bool
)

func init() {
	showCmd.Flags().IntVarP(&showPage, "page", "p", 1, "Page to print")
	showCmd.Flags().BoolVar(&showFullSummary, "full-summary", false, "Print the summary without truncation")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if services == nil || services.Documents == nil {
		return errNotConfigured
	}
	defer releasePayloads(services)

	orch := workspace.NewOrchestrator(workspace.Deps{
		Documents:   services.Documents,
		Comparisons: services.Comparisons,
		QA:          services.QA,
		Payloads:    services.Payloads,
		Decoder:     services.Decoder,
		Suggestions: services.Suggestions,
	})
	defer orch.Close()

	if err := workspace.Run(cmd.Context(), orch, orch.OnDocumentIDChanged(args[0])...); err != nil {
		return err
	}
	orch.GoToPage(showPage)
	if showFullSummary {
		orch.ToggleSummary()
	}

	view := orch.Snapshot()
	if view.DocumentStatus == workspace.StatusFailed {
		return explain(view.DocumentErr)
	}
	if view.Document == nil {
		return fmt.Errorf("document %s did not load", args[0])
	}
	printView(cmd, view)
	return nil
}

func printView(cmd *cobra.Command, v workspace.View) {
	doc := v.Document
	cmd.Printf("%s  (%s)\n", doc.DisplayTitle(), doc.SizeLabel())

	cmd.Printf("\nSummary:\n  %s\n", v.Summary)
	if v.SummaryTruncated && !v.SummaryExpanded {
		cmd.Println("  (use --full-summary for the rest)")
	}

	cmd.Println("\nKey Insights:")
	if v.InsightPages == 0 {
		cmd.Println("  No key points available.")
	}
	for i, item := range v.Insights.Items {
		cmd.Printf("  Insight %d: %s\n", v.Insights.FirstIndex+i+1, item)
	}
	if v.InsightPages > 1 {
		cmd.Printf("  (page %d of %d, see 'mineguard documents get %s' for all)\n",
			v.Insights.Number, v.InsightPages, doc.ID)
	}

	cmd.Println()
	switch v.Viewer.Status {
	case workspace.StatusReady:
		cmd.Printf("--- Page %d of %d ---\n", v.Viewer.Page, v.Viewer.PageCount)
		cmd.Println(v.Viewer.Text)
	case workspace.StatusFailed:
		cmd.Printf("Could not display this document: %v\n", v.Viewer.Err)
	}

	cmd.Println()
	if v.CandidatesStatus == workspace.StatusReady && len(v.Candidates) == 0 {
		cmd.Println(workspace.NoticeNoCandidates)
	} else if len(v.Candidates) > 0 {
		cmd.Println("Compare against:")
		for i := range v.Candidates {
			cmd.Printf("  mineguard compare %s %s   # %s\n", doc.ID, v.Candidates[i].ID, v.Candidates[i].DisplayTitle())
		}
	}

	if len(v.Chat.Turns) > 0 {
		cmd.Printf("\nConversation: %d question(s), see 'mineguard history %s'\n", len(v.Chat.Turns), doc.ID)
	} else {
		cmd.Println("\nSuggested questions:")
		for _, s := range v.Chat.Suggestions {
			cmd.Printf("  mineguard ask %s %q\n", doc.ID, s)
		}
	}
}
