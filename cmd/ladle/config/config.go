// Package configcmder provides the config command for managing persistent
// ladle configuration stored in the .ladle/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent ladle configuration.

Configuration is stored as config.toml in the .ladle/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values, and LADLE_* environment variables sit between the two.

Keys use dotted notation matching the TOML section structure:
  client.api_target,
  chat.model, chat.temperature, chat.max_tokens

Use subcommands to get, set, or list configuration values:
  ladle config set <key> <value>    Set a configuration value
  ladle config get <key>            Get a configuration value
  ladle config list                 List all configuration values

Examples:
  ladle config set chat.model gpt-4o-mini
  ladle config set chat.temperature 0.2
  ladle config get client.api_target
  ladle config list`

const configShortDesc string = "Manage persistent ladle configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
