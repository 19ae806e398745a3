package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beenthere-labs/beenthere/internal/adapters/driven/storage/memory"
	"github.com/beenthere-labs/beenthere/internal/adapters/driving/tui"
	"github.com/beenthere-labs/beenthere/internal/core/services"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk with the intake listener in the terminal",
	Long: `Open an interactive conversation with the intake listener.

After a couple of turns the listener starts suggesting stories from
people who have been through something similar. Requires an
OPENROUTER_API_KEY; story suggestions additionally need a built index.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	replies, err := newReplyService()
	if err != nil {
		return fmt.Errorf("chat needs a reply provider: %w", err)
	}

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}
	matcher, err := newMatcher(ctx, embedder)
	if err != nil {
		return err
	}

	gate := services.NewGate(services.NewModeration(loadRiskModel(), log), log)

	systemPrompt, greeting := intakePrompts()
	chat := services.NewChat(memory.NewSessionStore(), replies, matcher, gate, services.ChatConfig{
		SystemPrompt: systemPrompt,
		Greeting:     greeting,
	}, log)

	return tui.Run(ctx, chat)
}
