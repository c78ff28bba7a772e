package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxdesk/internal/output"
)

var countriesJSON bool

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the available countries",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newClient()
		if err != nil {
			return err
		}

		categories, err := api.ListCategories()
		if err != nil {
			return err
		}

		if countriesJSON {
			return output.JSON(categories)
		}
		fmt.Print(output.CategoryTable(categories))
		return nil
	},
}

func init() {
	countriesCmd.Flags().BoolVar(&countriesJSON, "json", false, "output JSON")
	rootCmd.AddCommand(countriesCmd)
}
