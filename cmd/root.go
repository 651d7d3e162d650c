package cmd

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "homeprice",
		Short:        "Estimate Pune house prices from location, area, bathrooms and BHK",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	cmd.AddCommand(
		newServeCmd(&configPath),
		newEstimateCmd(&configPath),
		newLocationsCmd(&configPath),
	)
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
