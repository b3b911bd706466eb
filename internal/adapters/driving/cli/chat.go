package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/coursechat-labs/coursechat-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Launch the interactive terminal chat. Follow-up questions share a
session, so the assistant remembers the recent conversation.

Controls:
  Enter - send
  Esc   - quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if askService == nil {
		return errors.New("chat requires ANTHROPIC_API_KEY and an embedding backend")
	}
	return tui.Run(cmd.Context(), askService)
}
