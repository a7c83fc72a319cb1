package cli

import (
	"github.com/spf13/cobra"
)

func newUnlockCmd() *cobra.Command {
	var pack string

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Unlock the full riddle pack via checkout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _ := newController(cmd.InOrStdin(), false)

			// The flag stands in for the game screen's pack dropdown.
			ctrl.SelectPack(pack)
			return ctrl.UnlockPack(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&pack, "pack", "", "Riddle pack to unlock (default: free)")

	return cmd
}

func newBuyCoinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy-coins",
		Short: "Buy the 50-coin pack via checkout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _ := newController(cmd.InOrStdin(), false)
			return ctrl.BuyCoins(cmd.Context())
		},
	}
}
