package handlers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mfdl/internal/config"
)

// NewChatCmd creates the chat command for trying the assistant from the shell
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message...>",
		Short: "Ask the site assistant a question",
		Long: `Send one message to the chat assistant and print the reply.

Uses the same responder as the web widget (canned replies, or Gemini when
chat.provider is "gemini").

Examples:
  mfdl chat "Di cosa ti occupi?"
  mfdl chat come posso contattarti`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			responder, err := newResponder(cmd.Context(), cfg, store)
			if err != nil {
				return err
			}

			reply, err := responder.Reply(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("chat failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
