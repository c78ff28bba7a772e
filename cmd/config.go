package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxdesk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change client configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the effective API base URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := resolveAPIURL()
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set-api URL",
	Short: "Persist the API base URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		return config.SetAPIURL(dir, args[0])
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
