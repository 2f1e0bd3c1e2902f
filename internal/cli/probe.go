package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/container-use/container-use-mcp/internal/probe"
)

var (
	probeTimeout time.Duration
	probeJSON    bool
)

func init() {
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 30*time.Second, "Give up if the server has not answered by then")
	probeCmd.Flags().BoolVar(&probeJSON, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Start the context server and perform the MCP handshake",
	Long: `Build the launch command exactly as the editor would, start it, send the MCP
initialize request, and list the tools the server offers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		launch, err := newExtension().ContextServerCommand(cmd.Context(), serverID(), newProject())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
		defer cancel()

		report, err := probe.Run(ctx, launch, probe.Options{ClientVersion: buildVersion})
		if err != nil {
			return fmt.Errorf("probing %s: %w", launch, err)
		}
		return writeReport(cmd.OutOrStdout(), report, probeJSON)
	},
}

func writeReport(w io.Writer, r *probe.Report, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	fmt.Fprintf(w, "Command:  %s\n", r.Command)
	fmt.Fprintf(w, "Server:   %s %s\n", r.ServerName, r.ServerVersion)
	fmt.Fprintf(w, "Protocol: %s\n", r.ProtocolVersion)
	fmt.Fprintf(w, "Elapsed:  %s\n", r.Elapsed.Round(time.Millisecond))
	if len(r.Tools) == 0 {
		fmt.Fprintln(w, "Tools:    none")
		return nil
	}
	fmt.Fprintf(w, "Tools:    %d\n", len(r.Tools))
	fmt.Fprintf(w, "  %s\n", strings.Join(r.Tools, "\n  "))
	return nil
}
