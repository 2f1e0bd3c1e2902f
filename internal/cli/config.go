package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/container-use/container-use-mcp/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage development host settings",
	Long: `Read and write defaults for this tool's own flags (user_settings, probe_timeout,
debug), stored at ` + config.FilePath() + `.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if len(args) == 1 {
			fmt.Fprintln(w, config.Get(args[0]))
			return nil
		}
		writeConfigValues(w)
		return nil
	},
}

// writeConfigValues prints every known key with its effective value.
func writeConfigValues(w io.Writer) {
	for _, key := range config.Keys() {
		fmt.Fprintf(w, "%s = %s\n", key, config.Get(key))
	}
}
