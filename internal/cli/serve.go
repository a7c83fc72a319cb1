package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/riddlewars/riddlewars-cli/internal/stubserver"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory stub backend for local play",
		Long: `serve runs a local in-memory backend implementing the riddle API, seeded
with a couple of riddle packs. Point the other commands at it with
--server or RIDDLEWARS_SERVER. All state is lost on exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			srv := stubserver.New(stubserver.NewStore(), logger)

			config := stubserver.DefaultListenConfig()
			config.Addr = addr
			listener := stubserver.NewListener(srv.Handler(), config, logger)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				logger.Info("shutdown signal received")
				cancel()
			}()

			errCh := make(chan error, 1)
			go func() {
				errCh <- listener.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				return listener.Shutdown(context.Background())
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")

	return cmd
}
