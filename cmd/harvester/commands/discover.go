package commands

import (
	"fmt"

	"trivia-harvester/internal/adapter/opentdb"
	"trivia-harvester/internal/logger"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(discoverCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Prints the number of verified questions advertised on the Open Trivia DB homepage.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		log := logger.Get()

		client := opentdb.NewHTTPClient(cfg.Harvest, log)
		count, err := opentdb.NewHomepageCountDiscoverer(client, cfg.Harvest.HomeURL, log).Discover(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), count)
		return nil
	},
}
