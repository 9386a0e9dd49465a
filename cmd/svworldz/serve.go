package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/svworldz"
	"github.com/jpalmerr/svworldz/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// serveCmd starts the site.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the site",
	Long: `Start the SV Worldz site.

The server will:
  - Load configuration from the YAML file (if given) and the environment
  - Fetch the channel stats now and every refresh interval
  - Serve the pages, the stats API and the live stream on the configured port

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  svworldz serve -c svworldz.yaml
  SVWORLDZ_STATS_URL=https://stats.example.com/channel svworldz serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg.Level())

	logger.Info("config loaded",
		"file", configFile,
		"locale", cfg.Locale,
		"contact_webhook", cfg.Contact.WebhookURL != "",
	)
	logger.Info("starting server",
		"port", cfg.Port,
		"refresh_interval", cfg.Stats.RefreshInterval.Duration().String(),
	)

	opts, err := config.BuildOptions(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build site options: %w", err)
	}

	site, err := svworldz.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- site.Start(ctx)
	}()

	// wait for server to finish
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
