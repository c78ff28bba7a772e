package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxdesk/internal/output"
	"taxdesk/internal/store"
	"taxdesk/internal/sync"
)

var setCountryCmd = &cobra.Command{
	Use:   "set-country RECORD_ID COUNTRY",
	Short: "Change a record's country (by country name or id)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordID, country := args[0], args[1]

		api, err := newClient()
		if err != nil {
			return err
		}

		st := store.New()
		if err := sync.LoadAll(api, st); err != nil {
			return err
		}

		cat, ok := st.Category(country)
		if !ok {
			if cat, ok = st.CategoryByName(country); !ok {
				return fmt.Errorf("unknown country %q", country)
			}
		}
		rec, ok := st.Get(recordID)
		if !ok {
			return fmt.Errorf("unknown record %q", recordID)
		}

		manager := sync.NewManager(st, api, sync.NewNotifier())
		if err, ok := manager.SetCountry(recordID, cat.ID); ok && err != nil {
			output.Error("failed to update country, reverted: %v", err)
			return err
		}

		output.Success("%s: %s -> %s", output.TitleCase(rec.Name), rec.Country, cat.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCountryCmd)
}
