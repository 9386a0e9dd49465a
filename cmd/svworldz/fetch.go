package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/svworldz"
	"github.com/jpalmerr/svworldz/config"
	"github.com/jpalmerr/svworldz/internal/view"
)

// fetchCmd performs one stats request and prints the result.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the channel stats once",
	Long: `Fetch the channel stats once using the configured endpoint and decoder,
then print the numbers formatted for the configured locale.

This is handy for checking credentials and decoder paths before deploying.
A failed fetch exits 1 and reports whether the request or the decoding
failed.

Example:
  svworldz fetch -c svworldz.yaml
  SVWORLDZ_STATS_URL=https://stats.example.com/channel svworldz fetch`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringP("config", "c", "", "path to config file")
	fetchCmd.Flags().Duration("timeout", 30*time.Second, "overall time limit")
}

func runFetch(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := config.BuildOptions(cfg, newLogger(cfg.Level()))
	if err != nil {
		return fmt.Errorf("failed to build site options: %w", err)
	}
	site, err := svworldz.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	snap, err := site.Fetch(ctx)
	switch {
	case errors.Is(err, svworldz.ErrNetwork):
		return fmt.Errorf("stats request failed: %w", err)
	case errors.Is(err, svworldz.ErrParse):
		return fmt.Errorf("stats response could not be decoded: %w", err)
	case err != nil:
		return err
	}

	tag, ok := view.ParseTag(cfg.Locale)
	if !ok {
		tag = view.DefaultTag
	}
	p := view.Printer(tag)

	fmt.Printf("Stats from %s\n", site.StatsURL())
	fmt.Printf("  Subscribers: %s\n", view.FormatCount(p, snap.Subscribers))
	fmt.Printf("  Views:       %s\n", view.FormatCount(p, snap.Views))

	return nil
}
