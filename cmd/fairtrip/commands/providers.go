package commands

import (
	"github.com/spf13/cobra"

	"github.com/fairtrip/fairtrip/internal/output"
)

func ProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List and inspect flight data providers",
	}
	cmd.AddCommand(providersListCmd())
	return cmd
}

func providersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered providers and their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			return output.JSON(a.router.ProviderInfos())
		},
	}
	return cmd
}
