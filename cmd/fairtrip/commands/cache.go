package commands

import (
	"github.com/spf13/cobra"

	"github.com/fairtrip/fairtrip/internal/output"
)

func CacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the provider response cache",
	}
	cmd.AddCommand(cacheClearCmd())
	return cmd
}

func cacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached provider response",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.store == nil {
				return output.JSON(map[string]string{"cache": a.storeDesc, "status": "nothing to clear"})
			}
			if err := a.store.Clear(cmd.Context()); err != nil {
				output.JSONError("cache clear failed", err)
				return nil
			}
			return output.JSON(map[string]string{"cache": a.storeDesc, "status": "cleared"})
		},
	}
}
