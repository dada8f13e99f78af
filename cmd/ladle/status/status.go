// Package statuscmder provides the status command for checking backend
// liveness and dependency health.
package statuscmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ladlehq/ladle/pkg/api"
	"github.com/ladlehq/ladle/pkg/cliui"
	"github.com/ladlehq/ladle/pkg/config"
)

const statusLongDesc string = `Check backend health and dependency status.

Queries the backend's liveness endpoint first, then its dependency status
report covering the OpenAI upstream and the database connection.

Examples:
  ladle status
  ladle status --api-target http://staging.example.com/api/v1`

const statusShortDesc string = "Check backend health and dependencies"

type statusCommander struct {
	apiTarget string
}

func NewStatusCmd() *cobra.Command {
	cmder := &statusCommander{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDesc,
		Long:  statusLongDesc,
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

func (c *statusCommander) run() error {
	client := api.New(c.apiTarget)

	fmt.Println()

	health, err := client.Health(context.Background())
	if err != nil {
		fmt.Printf("  %s %s %s\n\n",
			cliui.FailMark,
			cliui.KeyStyle.Render("Backend:"),
			cliui.DimStyle.Render("unreachable"),
		)
		return fmt.Errorf("checking health: %w", err)
	}

	fmt.Printf("  %s %s %s\n",
		cliui.BoolMark(health.Status == "healthy"),
		cliui.KeyStyle.Render("Backend:"),
		cliui.ValueStyle.Render(fmt.Sprintf("%s (%s)", health.Status, health.Service)),
	)

	status, err := client.Status(context.Background())
	if err != nil {
		return fmt.Errorf("checking status: %w", err)
	}

	fmt.Printf("  %s %s\n",
		cliui.BoolMark(status.OpenAIConnected),
		cliui.KeyStyle.Render("OpenAI upstream"),
	)
	fmt.Printf("  %s %s\n",
		cliui.BoolMark(status.DatabaseConnected),
		cliui.KeyStyle.Render("Database"),
	)

	if status.Message != "" {
		fmt.Printf("\n  %s\n", cliui.DimStyle.Render(status.Message))
	}

	fmt.Println()
	return nil
}
