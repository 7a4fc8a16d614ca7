package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/output"
)

func PlanCmd() *cobra.Command {
	var (
		tripPath string
		pdfPath  string
		o        tripOverrides
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Find fair flight combinations for a group to one destination",
		Example: `  fairtrip plan --trip trip.yaml --to BCN --depart 2026-06-12 --return 2026-06-15
  fairtrip plan --trip trip.yaml --to LIS --depart 2026-07-01 --non-stop --pdf plan.pdf --mode live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := loadTrip(tripPath)
			if err != nil {
				return err
			}
			o.apply(trip)
			if trip.Destination == "" || trip.DepartureDate == "" {
				return cmd.Help()
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

			plan, err := a.planner.PlanTrip(ctx, core.TripRequest{
				Travelers:     travelers,
				Destination:   trip.Destination,
				DepartureDate: trip.DepartureDate,
				ReturnDate:    trip.ReturnDate,
				Filters:       trip.Filters,
			})
			if err != nil {
				output.JSONError("trip planning failed", err)
				return nil
			}
			a.metrics.Plans.Inc()
			a.log.Debug("plan computed", "destination", plan.Destination, "combinations", len(plan.Combinations))

			if pdfPath != "" {
				if err := writePDF(pdfPath, plan); err != nil {
					return err
				}
			}
			return output.JSON(plan)
		},
	}

	cmd.Flags().StringVar(&tripPath, "trip", "", "Trip file (YAML) listing travelers (required)")
	cmd.Flags().StringVar(&o.to, "to", "", "Destination airport code, overrides the trip file")
	cmd.Flags().StringVar(&o.depart, "depart", "", "Departure date YYYY-MM-DD")
	cmd.Flags().StringVar(&o.ret, "return", "", "Return date YYYY-MM-DD (optional)")
	cmd.Flags().BoolVar(&o.nonStop, "non-stop", false, "Only direct flights")
	cmd.Flags().IntVar(&o.maxStops, "max-stops", -1, "Maximum stops per itinerary: 0, 1 or 2")
	cmd.Flags().Bool("check-all", false, "Search every candidate airport, not only the nearest three")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write a PDF report to this file")

	return cmd
}

func writePDF(path string, plan *core.TripPlan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := output.WritePlanPDF(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
