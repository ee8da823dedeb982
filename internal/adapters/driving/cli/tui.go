package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive workspace.

The library lists your documents and uploads new ones. Opening a document
shows its pages next to the AI summary, key insights, a compliance check
against another document, and a question thread.

Controls:
  ↑/k, ↓/j - Navigate documents
  Enter    - Open document
  h/l      - Previous/next page
  t, c     - Choose comparison target, run comparison
  a        - Ask a question
  Esc      - Back / Cancel upload
  ?        - Toggle help
  Ctrl+C   - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if services == nil {
		return errNotConfigured
	}
	defer releasePayloads(services)

	app, err := tui.NewApp(tuiPorts(services))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiPorts builds the TUI ports from the configured services.
func tuiPorts(s *Services) *tui.Ports {
	return &tui.Ports{
		Documents:        s.Documents,
		Comparisons:      s.Comparisons,
		QA:               s.QA,
		Auth:             s.Auth,
		Payloads:         s.Payloads,
		Decoder:          s.Decoder,
		Suggestions:      s.Suggestions,
		WatchCredentials: s.WatchCredentials,
	}
}
