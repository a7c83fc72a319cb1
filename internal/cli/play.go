package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riddlewars/riddlewars-cli/internal/model"
	"github.com/riddlewars/riddlewars-cli/internal/session"
)

func newPlayCmd() *cobra.Command {
	var pack string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play riddles interactively",
		Long: `play starts an interactive session: it fetches a riddle, reads answers
from the terminal, and advances through the pack until you quit.

Commands inside the session:
  answer <text>   submit an answer for the current riddle
  hint            buy and show a hint for the current riddle
  start [pack]    restart, optionally switching packs
  leaderboard     show the ranked score list
  profile         show your profile
  unlock          unlock the active pack via checkout
  buy             buy the 50-coin pack via checkout
  help            show this list
  exit | quit     leave the session`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// One buffered reader over stdin, shared by the loop and the
			// view's confirmation prompts.
			in := bufio.NewReader(cmd.InOrStdin())
			ctrl, _ := newController(in, true)
			out := NewOutput(cfg.Output)

			ctx := cmd.Context()
			if err := ctrl.Init(ctx); err != nil {
				return err
			}
			if ctrl.Screen() == model.ScreenSignup {
				out.PrintMessage("No account found - playing as guest (run 'riddlewars signup' to register).")
				ctrl.SkipSignup()
			}

			if err := ctrl.Start(ctx, pack); err != nil {
				return err
			}

			runPlayLoop(ctx, ctrl, out, in)
			return nil
		},
	}

	cmd.Flags().StringVar(&pack, "pack", "", "Riddle pack (default: free)")

	return cmd
}

// runPlayLoop reads commands until EOF or quit. Bare input that is not a
// known command is treated as an answer, so the common case is just typing
// the answer and pressing enter.
func runPlayLoop(ctx context.Context, ctrl *session.Controller, out *Output, in *bufio.Reader) {
	for {
		fmt.Print("riddle> ")
		line, readErr := in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			if readErr != nil {
				fmt.Println()
				return
			}
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		var err error

		switch strings.ToLower(cmd) {
		case "exit", "quit":
			return
		case "help":
			out.PrintMessage("Commands: answer <text>, hint, start [pack], leaderboard, profile, unlock, buy, exit")
		case "answer":
			err = ctrl.SubmitAnswer(ctx, rest)
		case "hint":
			err = ctrl.UseHint(ctx)
		case "start":
			err = ctrl.Start(ctx, strings.TrimSpace(rest))
		case "leaderboard", "lb":
			err = ctrl.ShowLeaderboard(ctx)
			ctrl.CloseOverlay()
		case "profile":
			ctrl.ShowProfile()
			out.Print(ctrl.User())
			ctrl.CloseOverlay()
		case "unlock":
			err = ctrl.UnlockPack(ctx)
		case "buy":
			err = ctrl.BuyCoins(ctx)
		default:
			// Not a command: treat the whole line as the answer.
			err = ctrl.SubmitAnswer(ctx, line)
		}

		switch {
		case errors.Is(err, model.ErrAnswerRequired):
			out.PrintMessage("Type an answer.")
		case errors.Is(err, model.ErrNoRiddle):
			out.PrintMessage("No riddle on screen - use 'start' first.")
		case errors.Is(err, model.ErrBusy):
			out.PrintMessage("Still working on the previous action.")
		case err != nil:
			out.PrintError(err)
		}
	}
}
