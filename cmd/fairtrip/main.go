package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairtrip/fairtrip/cmd/fairtrip/commands"
)

var version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "fairtrip",
		Short: "FairTrip group trip planner: fair flight combinations for friends flying from different cities",
		Long: "Plans a group trip by searching flights for every traveler from their nearby airports, " +
			"then proposes the cheapest, fairest and best balanced combinations as JSON.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("mode", "", "Provider mode: mock, live, hybrid (default from config/env)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from config/env)")

	root.AddCommand(commands.PlanCmd())
	root.AddCommand(commands.DestinationsCmd())
	root.AddCommand(commands.AirportsCmd())
	root.AddCommand(commands.ServeCmd())
	root.AddCommand(commands.ProvidersCmd())
	root.AddCommand(commands.DoctorCmd())
	root.AddCommand(commands.CacheCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print fairtrip version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("fairtrip " + version)
		},
	}
}
