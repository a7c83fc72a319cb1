package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			banner, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(HealthOutput{Status: banner})
			return nil
		},
	}
}
