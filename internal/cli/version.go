package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/container-use/container-use-mcp/internal/branding"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVersion(cmd.OutOrStdout(), versionShort, versionJSON)
	},
}

// versionInfo describes the build and what it launches.
type versionInfo struct {
	Version         string `json:"version"`
	Commit          string `json:"commit"`
	Date            string `json:"date"`
	Extension       string `json:"extension"`
	Launch          string `json:"launch"`
	ProtocolVersion string `json:"protocolVersion"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:         buildVersion,
		Commit:          buildCommit,
		Date:            buildDate,
		Extension:       branding.ExtensionID(),
		Launch:          branding.BinaryName() + " " + branding.LaunchArg(),
		ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
	}
}

func writeVersion(w io.Writer, short, asJSON bool) error {
	info := currentVersion()
	if short {
		fmt.Fprintln(w, info.Version)
		return nil
	}

	if asJSON {
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling version info: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	fmt.Fprintf(w, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date)
	fmt.Fprintf(w, "  extension: %s\n", info.Extension)
	fmt.Fprintf(w, "  launches:  %s\n", info.Launch)
	fmt.Fprintf(w, "  protocol:  MCP %s\n", info.ProtocolVersion)
	return nil
}
