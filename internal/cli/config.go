package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and modify bookshelf configuration.

Configuration is stored in ~/.config/bookshelf/config.yaml and every key can
be overridden with a BOOKSHELF_ environment variable, for example
BOOKSHELF_API_BASE_URL.

Examples:
  bookshelf config get api.base_url
  bookshelf config set api.base_url http://localhost:8000
  bookshelf config set network.retry_attempts 3
  bookshelf config set history.enabled false`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := config.GetValue(key)
		if value == nil {
			return fmt.Errorf("key not found: %s", key)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		if config.GetValue(key) == nil {
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("failed to set config: %w", err)
		}

		Successf("Set %s = %s", key, value)
		fmt.Fprintf(cmd.OutOrStdout(), "Config saved to: %s\n", config.GetConfigPath())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config file: %s\n", config.GetConfigPath())
		fmt.Fprintf(out, "Database:    %s\n", config.GetDBPath())
		fmt.Fprintf(out, "Config dir:  %s\n", config.GetConfigDir())
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
