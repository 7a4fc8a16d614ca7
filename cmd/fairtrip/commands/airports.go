package commands

import (
	"github.com/spf13/cobra"

	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/output"
)

type airportsResult struct {
	City     string         `json:"city"`
	Airports []core.Airport `json:"airports"`
	Searched []core.Airport `json:"searched"`
}

func AirportsCmd() *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:   "airports",
		Short: "Resolve a city to candidate departure airports",
		Example: `  fairtrip airports --city Leeds
  fairtrip airports --city "Newcastle upon Tyne" --mode live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if city == "" {
				return cmd.Help()
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			airports, err := a.planner.Resolver().Resolve(cmd.Context(), city)
			if err != nil {
				output.JSONError("airport lookup failed", err)
				return nil
			}
			if airports == nil {
				airports = []core.Airport{}
			}
			// Searched shows which airports a plan would actually query.
			searched := core.SelectAirports(core.Traveler{Origin: city, CandidateAirports: airports},
				a.cfg.Search.CheckAllAirports)
			return output.JSON(airportsResult{City: city, Airports: airports, Searched: searched})
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "City name (required)")
	cmd.Flags().Bool("check-all", false, "Show every candidate as searched")

	return cmd
}
