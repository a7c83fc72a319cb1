package cli

import (
	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	var pack string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Show the current riddle of a pack",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _ := newController(cmd.InOrStdin(), false)

			if err := ctrl.Init(cmd.Context()); err != nil {
				return err
			}
			return ctrl.Start(cmd.Context(), pack)
		},
	}

	cmd.Flags().StringVar(&pack, "pack", "", "Riddle pack (default: free)")

	return cmd
}
