package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLocationsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the locations the model recognises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			for _, loc := range a.estimator.Locations() {
				fmt.Fprintln(cmd.OutOrStdout(), loc)
			}
			return nil
		},
	}
}
