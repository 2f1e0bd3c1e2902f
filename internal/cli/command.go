package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/container-use/container-use-mcp/internal/host"
)

var commandJSON bool

func init() {
	commandCmd.Flags().BoolVar(&commandJSON, "json", false, "Print the command as JSON")
	rootCmd.AddCommand(commandCmd)
}

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Print the command that starts the context server",
	Long: `Resolve the cu binary for the project (settings override, cached path, then
PATH lookup) and print the command the editor would launch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		launch, err := newExtension().ContextServerCommand(cmd.Context(), serverID(), newProject())
		if err != nil {
			return err
		}
		return writeCommand(cmd.OutOrStdout(), launch, commandJSON)
	},
}

func writeCommand(w io.Writer, c *host.Command, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling command: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	fmt.Fprintf(w, "Command: %s\n", c.Command)
	fmt.Fprintf(w, "Args:    %v\n", c.Args)
	if len(c.Env) == 0 {
		fmt.Fprintln(w, "Env:     (inherited)")
		return nil
	}
	fmt.Fprintln(w, "Env:")
	for _, e := range c.Env {
		fmt.Fprintf(w, "  %s=%s\n", e.Name, e.Value)
	}
	return nil
}
