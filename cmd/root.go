package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"taxdesk/internal/apiclient"
	"taxdesk/internal/config"
)

var (
	rootVersion string
	apiFlag     string
)

// SetVersion sets the version string
func SetVersion(v string) {
	rootVersion = v
}

var rootCmd = &cobra.Command{
	Use:   "taxdesk",
	Short: "Terminal admin client for the customer/tax record store",
	Long: `taxdesk - a terminal administrative view over a remote customer/tax record store.

Lists records, filters by country, changes a record's country inline with
optimistic local state and rollback, and edits records through a modal form.

Run without a subcommand to open the interactive browser.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return browseCmd.RunE(cmd, args)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveAPIURL resolves the API base URL from the --api flag, the
// TAXDESK_API_URL env, the config file, then the default.
func resolveAPIURL() (string, error) {
	if apiFlag != "" {
		return apiFlag, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return config.APIURL(dir)
}

// newClient builds the remote store client for the resolved base URL.
func newClient() (*apiclient.Client, error) {
	baseURL, err := resolveAPIURL()
	if err != nil {
		return nil, err
	}
	return apiclient.New(baseURL), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "API base URL (overrides config)")
}
