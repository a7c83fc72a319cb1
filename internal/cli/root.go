package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/riddlewars/riddlewars-cli/internal/backend"
	"github.com/riddlewars/riddlewars-cli/internal/model"
	"github.com/riddlewars/riddlewars-cli/internal/session"
)

var (
	cfg    *Config
	client *backend.Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "riddlewars",
		Short: "CLI for the RiddleWars riddle game backend",
		Long: `riddlewars is a CLI client for the RiddleWars riddle game.

It covers the full player flow: signup, riddle play with hints, pack
unlocks, coin purchases, the leaderboard and the profile, either as
one-shot commands or through the interactive play mode.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Settle the user identifier once for this invocation
			if err := cfg.ResolveUserID(); err != nil {
				return err
			}

			client = backend.New(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: RIDDLEWARS_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.UserID, "user-id", cfg.UserID, "Platform user id (env: RIDDLEWARS_USER_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.IDFile, "id-file", cfg.IDFile, "Identity file path (env: RIDDLEWARS_ID_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Yes, "yes", "y", cfg.Yes, "Answer yes to confirmation prompts")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newUnlockCmd())
	rootCmd.AddCommand(newBuyCoinsCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the CLI logger. Quiet by default; -v surfaces the
// controller's request logging.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newController assembles a session controller wired to a terminal view.
func newController(in io.Reader, showStatus bool) (*session.Controller, *terminalView) {
	view := newTerminalView(NewOutput(cfg.Output), in, cfg.Yes, showStatus)
	ctrl := session.NewController(session.Config{
		Backend: client,
		View:    view,
		Dialogs: view,
		Opener:  view,
		Logger:  newLogger(),
		UserID:  model.UserID(cfg.UserID),
	})
	return ctrl, view
}
