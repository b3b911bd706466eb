package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

var askSession string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-off question about the courses",
	Long: `Ask a single question and print the answer with its sources.

Pass --session to continue a previous conversation; the session
identifier is printed with every answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "", "session identifier for follow-up questions")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("question answering requires ANTHROPIC_API_KEY and an embedding backend")
	}

	answer, err := askService.Ask(cmd.Context(), args[0], askSession)
	if err != nil {
		return err
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, label := range sourceLabels(answer.Sources) {
			cmd.Printf("  - %s\n", label)
		}
	}
	cmd.Println()
	cmd.Printf("Session: %s\n", answer.SessionID)
	return nil
}

// sourceLabels deduplicates citation labels keeping rank order.
func sourceLabels(sources []domain.SourceCitation) []string {
	seen := make(map[string]bool)
	labels := make([]string, 0, len(sources))
	for _, src := range sources {
		label := src.Label()
		if src.Link != "" {
			label += " (" + src.Link + ")"
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
