package stubserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ListenConfig holds configuration for the standalone stub server
type ListenConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultListenConfig returns sensible defaults for local development
func DefaultListenConfig() ListenConfig {
	return ListenConfig{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Listener wraps the stub server's HTTP server with graceful shutdown
// support, for running it as a local development backend.
type Listener struct {
	server *http.Server
	logger *slog.Logger
	config ListenConfig
}

// NewListener creates a listener serving the given handler
func NewListener(handler http.Handler, config ListenConfig, logger *slog.Logger) *Listener {
	return &Listener{
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		},
		logger: logger,
		config: config,
	}
}

// Addr returns the configured listen address
func (l *Listener) Addr() string {
	return l.server.Addr
}

// Start begins listening for HTTP requests
func (l *Listener) Start() error {
	l.logger.Info("starting stub backend", slog.String("addr", l.server.Addr))

	if err := l.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server
func (l *Listener) Shutdown(ctx context.Context) error {
	l.logger.Info("shutting down stub backend")

	shutdownCtx, cancel := context.WithTimeout(ctx, l.config.ShutdownTimeout)
	defer cancel()

	if err := l.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	l.logger.Info("stub backend stopped")
	return nil
}
