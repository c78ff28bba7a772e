package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxdesk/internal/output"
	"taxdesk/internal/version"
)

var versionCheckFlag bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the taxdesk version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("taxdesk", rootVersion)
		if !versionCheckFlag {
			return
		}

		result := version.CheckCached(rootVersion)
		switch {
		case result.Error != nil:
			output.Warning("update check failed: %v", result.Error)
		case result.HasUpdate:
			output.Info("Update available: %s", result.LatestVersion)
			if result.UpdateURL != "" {
				output.Info("  %s", result.UpdateURL)
			}
		default:
			output.Info("Up to date.")
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheckFlag, "check", false, "check for a newer release")
	rootCmd.AddCommand(versionCmd)
}
