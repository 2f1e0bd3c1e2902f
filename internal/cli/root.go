package cli

import (
	"github.com/spf13/cobra"

	"github.com/container-use/container-use-mcp/internal/branding"
	"github.com/container-use/container-use-mcp/internal/config"
	"github.com/container-use/container-use-mcp/internal/extension"
	"github.com/container-use/container-use-mcp/internal/host"
	"github.com/container-use/container-use-mcp/internal/logging"
	"github.com/container-use/container-use-mcp/internal/project"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	projectDir       string
	userSettingsPath string
	debug            bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", ".", "Worktree whose settings are read")
	rootCmd.PersistentFlags().StringVar(&userSettingsPath, "user-settings", project.UserSettingsPath(), "User-level settings file (empty to skip)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging on stderr")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` exposes the cu binary as an MCP context server.

This command stands in for the editor: it reads the editor settings of a
worktree, asks the extension for the launch command and configuration
metadata, and can start the server to check that it answers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Load(); err != nil {
			logging.Warn("ignoring config file", "error", err)
		}
		applyConfigDefaults(cmd)

		if debug {
			logging.SetDefault(logging.New(cmd.ErrOrStderr(), true))
		}
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		logging.Error(err.Error())
	}
	return err
}

// applyConfigDefaults fills flags the user did not pass from the config
// file and CONTAINER_USE_MCP_* variables.
func applyConfigDefaults(cmd *cobra.Command) {
	if !cmd.Flags().Changed("user-settings") && config.IsSet(config.KeyUserSettings) {
		userSettingsPath = config.Get(config.KeyUserSettings)
	}
	if !cmd.Flags().Changed("debug") {
		debug = config.Bool(config.KeyDebug)
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil && !f.Changed && config.IsSet(config.KeyProbeTimeout) {
		probeTimeout = config.Duration(config.KeyProbeTimeout)
	}
}

// serverID is the context server instance the development host asks for.
func serverID() host.ContextServerID {
	return host.ContextServerID(branding.ExtensionID())
}

func newProject() *project.Project {
	return project.New(projectDir, project.WithUserSettings(userSettingsPath))
}

func newExtension() *extension.Extension {
	return extension.New(extension.WithLogger(logging.Default()))
}
