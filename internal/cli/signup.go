package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riddlewars/riddlewars-cli/internal/model"
)

func newSignupCmd() *cobra.Command {
	var name, phone, bank, account string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register with the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _ := newController(cmd.InOrStdin(), false)

			err := ctrl.Register(cmd.Context(), model.Registration{
				Name:          name,
				Phone:         phone,
				Bank:          bank,
				AccountNumber: account,
			})
			if errors.Is(err, model.ErrNameRequired) {
				return fmt.Errorf("--name is required")
			}
			if err != nil {
				return err
			}

			// The controller only reaches the game screen on a successful
			// registration; failures were already reported to the user.
			if ctrl.Screen() == model.ScreenGame {
				NewOutput(cfg.Output).Print(ctrl.User())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&bank, "bank", "", "Bank name for payouts")
	cmd.Flags().StringVar(&account, "account", "", "Bank account number")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
