package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

var compareCmd = &cobra.Command{
	Use:   "compare [source-id] [target-id]",
	Short: "Check a document's compliance against another",
	Long: `Evaluate the source document against the requirements found in the
target document, for example an operating plan against a regulation.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if services == nil || services.Comparisons == nil {
		return errNotConfigured
	}

	result, err := services.Comparisons.Compare(cmd.Context(), args[0], args[1])
	if errors.Is(err, domain.ErrSameDocument) {
		return err
	}
	if err != nil {
		return fmt.Errorf("comparison failed: %w", explain(err))
	}

	printComparison(cmd, result)
	return nil
}

func printComparison(cmd *cobra.Command, r *domain.ComparisonResult) {
	cmd.Printf("Compliance: %s\n", r.ScoreLabel())
	cmd.Printf("%s\n", strings.Join(r.Summary.Chips(), "  "))

	for _, e := range r.Evaluations {
		cmd.Printf("\n[%s] %s\n", e.Status.Label(), e.Requirement)
		if e.Rationale != "" {
			cmd.Printf("  %s\n", e.Rationale)
		}
		if len(e.Evidence) > 0 {
			cmd.Println("  Evidence:")
			for _, ev := range e.Evidence {
				cmd.Printf("    - %s\n", ev)
			}
		}
	}
}
