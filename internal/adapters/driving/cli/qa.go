package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question...]",
	Short: "Ask a question about a document",
	Long: `Ask a question answered from the document's content.

Examples:
  mineguard ask 42 "What are the compliance risks?"
  mineguard ask 42 Are penalties mentioned?`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

var historyCmd = &cobra.Command{
	Use:   "history [doc-id]",
	Short: "Show the conversation for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if services == nil || services.QA == nil {
		return errNotConfigured
	}

	question := strings.Join(args[1:], " ")
	if err := domain.ValidateQuestion(question); err != nil {
		return err
	}

	answer, err := services.QA.Ask(cmd.Context(), args[0], question)
	if err != nil {
		cmd.Println(domain.FallbackAnswer)
		return fmt.Errorf("question failed: %w", explain(err))
	}

	cmd.Println(answer)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if services == nil || services.QA == nil {
		return errNotConfigured
	}

	turns, err := services.QA.History(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load history: %w", explain(err))
	}

	if len(turns) == 0 {
		cmd.Println("No questions yet. Try one of:")
		for _, p := range suggestions() {
			cmd.Printf("  %s\n", p)
		}
		return nil
	}

	for i, t := range turns {
		if i > 0 {
			cmd.Println()
		}
		cmd.Printf("Q: %s\n", t.Question)
		cmd.Printf("A: %s\n", t.Answer)
	}
	return nil
}

func suggestions() []string {
	if services != nil && services.Suggestions != nil {
		return services.Suggestions.Suggestions()
	}
	return domain.SuggestedPrompts
}
