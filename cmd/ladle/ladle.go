// Package ladlecmder
package ladlecmder

import (
	"github.com/spf13/cobra"

	chatcmder "github.com/ladlehq/ladle/cmd/ladle/chat"
	configcmder "github.com/ladlehq/ladle/cmd/ladle/config"
	modelscmder "github.com/ladlehq/ladle/cmd/ladle/models"
	statuscmder "github.com/ladlehq/ladle/cmd/ladle/status"
	versioncmder "github.com/ladlehq/ladle/cmd/version"
)

const ladleLongDesc string = `Ladle is a terminal chat client for the LLM Practice API.

Talk to the culinary assistant:
  ladle chat             Interactive chat (streaming by default)
  ladle models           List available models
  ladle status           Check backend health and dependencies
  ladle config           Manage persistent configuration`

const ladleShortDesc string = "Ladle - terminal chat for the LLM Practice API"

func NewLadleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ladle",
		Short: ladleShortDesc,
		Long:  ladleLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .ladle/ config directory")

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(modelscmder.NewModelsCmd())
	cmd.AddCommand(statuscmder.NewStatusCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
