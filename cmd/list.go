package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxdesk/internal/filter"
	"taxdesk/internal/output"
	"taxdesk/internal/store"
	"taxdesk/internal/sync"
)

var (
	listCountries []string
	listQuery     string
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List records, optionally filtered by country or name",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newClient()
		if err != nil {
			return err
		}

		st := store.New()
		if err := sync.LoadAll(api, st); err != nil {
			return err
		}

		selected := make(map[string]bool)
		for _, name := range listCountries {
			c, ok := st.CategoryByName(name)
			if !ok {
				if c, ok = st.Category(name); !ok {
					return fmt.Errorf("unknown country %q", name)
				}
			}
			selected[c.ID] = true
		}

		rows := filter.Visible(st.Records(), st.Categories(), selected)
		rows = filter.MatchName(rows, listQuery)

		if listJSON {
			return output.JSON(rows)
		}
		fmt.Print(output.RecordTable(rows, output.TerminalWidth(0)))
		return nil
	},
}

func init() {
	listCmd.Flags().StringArrayVar(&listCountries, "country", nil, "filter by country name or id (repeatable)")
	listCmd.Flags().StringVar(&listQuery, "query", "", "filter by name substring")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output JSON")
	rootCmd.AddCommand(listCmd)
}
