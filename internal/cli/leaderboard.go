package cli

import (
	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the ranked score list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _ := newController(cmd.InOrStdin(), false)
			return ctrl.ShowLeaderboard(cmd.Context())
		},
	}
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your cached profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _ := newController(cmd.InOrStdin(), false)

			if err := ctrl.Init(cmd.Context()); err != nil {
				return err
			}
			ctrl.ShowProfile()

			NewOutput(cfg.Output).Print(ctrl.User())
			return nil
		},
	}
}
