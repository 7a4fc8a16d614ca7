package commands

import (
	"github.com/spf13/cobra"

	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/output"
)

func DestinationsCmd() *cobra.Command {
	var (
		tripPath     string
		tripType     string
		discoverFrom string
		limit        int
		o            tripOverrides
	)

	cmd := &cobra.Command{
		Use:   "destinations",
		Short: "Rank candidate destinations by estimated group price",
		Example: `  fairtrip destinations --trip trip.yaml --depart 2026-06-12 --type beach
  fairtrip destinations --trip trip.yaml --depart 2026-06-12 --discover-from LBA --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := loadTrip(tripPath)
			if err != nil {
				return err
			}
			o.apply(trip)
			if trip.DepartureDate == "" {
				return cmd.Help()
			}
			if tripType == "" {
				tripType = trip.TripType
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			travelers, err := a.planner.PrepareTravelers(ctx, trip.Travelers)
			if err != nil {
				output.JSONError("could not resolve traveler airports", err)
				return nil
			}

			ranked, err := a.planner.RankDestinations(ctx, core.DestinationRequest{
				Travelers:     travelers,
				DepartureDate: trip.DepartureDate,
				ReturnDate:    trip.ReturnDate,
				Filters:       trip.Filters,
				TripType:      tripType,
				DiscoverFrom:  discoverFrom,
				Limit:         limit,
			})
			if err != nil {
				output.JSONError("destination ranking failed", err)
				return nil
			}
			if ranked == nil {
				ranked = []core.DestinationCandidate{}
			}
			return output.JSON(ranked)
		},
	}

	cmd.Flags().StringVar(&tripPath, "trip", "", "Trip file (YAML) listing travelers (required)")
	cmd.Flags().StringVar(&o.depart, "depart", "", "Departure date YYYY-MM-DD")
	cmd.Flags().StringVar(&o.ret, "return", "", "Return date YYYY-MM-DD (optional)")
	cmd.Flags().BoolVar(&o.nonStop, "non-stop", false, "Only direct flights")
	cmd.Flags().IntVar(&o.maxStops, "max-stops", -1, "Maximum stops per itinerary: 0, 1 or 2")
	cmd.Flags().StringVar(&tripType, "type", "", "Trip type tag: beach, city, culture, nightlife, ski, ...")
	cmd.Flags().StringVar(&discoverFrom, "discover-from", "", "Also rank destinations the provider suggests from this airport")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum destinations to return (0 = all)")

	return cmd
}
