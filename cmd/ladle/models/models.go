// Package modelscmder provides the models command for listing the models
// the backend can serve.
package modelscmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ladlehq/ladle/pkg/api"
	"github.com/ladlehq/ladle/pkg/cliui"
	"github.com/ladlehq/ladle/pkg/config"
)

const modelsLongDesc string = `List the models available on the backend.

Shows each model's identifier, display name, description, and token limit.
Use the identifier with "ladle chat --model" or persist it with
"ladle config set chat.model".

Examples:
  ladle models
  ladle models --api-target http://staging.example.com/api/v1`

const modelsShortDesc string = "List available models"

type modelsCommander struct {
	apiTarget string
}

func NewModelsCmd() *cobra.Command {
	cmder := &modelsCommander{}

	cmd := &cobra.Command{
		Use:   "models",
		Short: modelsShortDesc,
		Long:  modelsLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagAPITarget})
			cmder.apiTarget = v.GetString("client.api_target")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)

	return cmd
}

func (c *modelsCommander) run() error {
	client := api.New(c.apiTarget)

	resp, err := client.Models(context.Background())
	if err != nil {
		return fmt.Errorf("listing models: %w", err)
	}

	fmt.Println()
	for _, m := range resp.Models {
		fmt.Printf("  %s  %s\n",
			cliui.NameStyle.Render(m.ID),
			cliui.ValueStyle.Render(m.Name),
		)
		fmt.Printf("      %s\n",
			cliui.DimStyle.Render(fmt.Sprintf("%s (max %d tokens)", m.Description, m.MaxTokens)),
		)
	}
	fmt.Println()

	return nil
}
