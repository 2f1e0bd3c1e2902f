package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/container-use/container-use-mcp/internal/host"
)

var (
	configSchema       bool
	configInstructions bool
	configDefaults     bool
	configJSON         bool
)

func init() {
	configurationCmd.Flags().BoolVar(&configSchema, "schema", false, "Print only the settings JSON schema")
	configurationCmd.Flags().BoolVar(&configInstructions, "instructions", false, "Print only the installation instructions")
	configurationCmd.Flags().BoolVar(&configDefaults, "defaults", false, "Print only the default settings")
	configurationCmd.Flags().BoolVar(&configJSON, "json", false, "Print all metadata as JSON")
	configurationCmd.MarkFlagsMutuallyExclusive("schema", "instructions", "defaults", "json")
	rootCmd.AddCommand(configurationCmd)
}

var configurationCmd = &cobra.Command{
	Use:   "configuration",
	Short: "Print the configuration metadata shown by the editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := newExtension().ContextServerConfiguration(cmd.Context(), serverID(), newProject())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch {
		case configSchema:
			return writeSchema(w, cfg.SettingsSchema)
		case configInstructions:
			fmt.Fprint(w, cfg.InstallationInstructions)
		case configDefaults:
			fmt.Fprint(w, cfg.DefaultSettings)
		case configJSON:
			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling configuration: %w", err)
			}
			fmt.Fprintln(w, string(out))
		default:
			return writeConfiguration(w, cfg)
		}
		return nil
	},
}

// writeSchema pretty-prints the compact schema string.
func writeSchema(w io.Writer, schema string) error {
	var v interface{}
	if err := json.Unmarshal([]byte(schema), &v); err != nil {
		return fmt.Errorf("decoding settings schema: %w", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting settings schema: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func writeConfiguration(w io.Writer, cfg *host.ContextServerConfiguration) error {
	fmt.Fprintln(w, "== Installation instructions ==")
	fmt.Fprintln(w, cfg.InstallationInstructions)
	fmt.Fprintln(w, "== Default settings ==")
	fmt.Fprintln(w, cfg.DefaultSettings)
	fmt.Fprintln(w, "== Settings schema ==")
	return writeSchema(w, cfg.SettingsSchema)
}
