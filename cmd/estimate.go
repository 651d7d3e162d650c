package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"homeprice/service"
)

func newEstimateCmd(configPath *string) *cobra.Command {
	req := service.DefaultRequest()
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the price of one house",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			svc, err := service.New(a.estimator, service.Options{Logger: a.logger})
			if err != nil {
				return err
			}
			quote, err := svc.Estimate(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(quote)
			}
			_, err = fmt.Fprint(out, quote.Summary())
			return err
		},
	}
	cmd.Flags().StringVar(&req.Location, "location", "", "location name (case-insensitive)")
	cmd.Flags().Float64Var(&req.TotalSqft, "sqft", req.TotalSqft, "total area in sq.ft")
	cmd.Flags().IntVar(&req.Bath, "bath", req.Bath, "number of bathrooms")
	cmd.Flags().IntVar(&req.BHK, "bhk", req.BHK, "number of bedrooms (BHK)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the quote as JSON")
	return cmd
}
