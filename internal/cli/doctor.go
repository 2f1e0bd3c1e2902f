package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/container-use/container-use-mcp/internal/doctor"
	"github.com/container-use/container-use-mcp/internal/host"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check settings and the cu installation",
	Long:  `Run diagnostic checks on the project's settings and the cu binary the extension would launch.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor.Doctor{
			Extension: newExtension(),
			Project:   newProject(),
			Runner:    host.ExecRunner{},
		}
		res := d.Run(cmd.Context(), cmd.OutOrStdout())
		if res.Problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", res.Problems)
		}
		return nil
	},
}
