package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/svworldz"
)

func main() {
	// start mock server (see mock_server.go)
	go StartMockStatsServer(":9999")
	time.Sleep(100 * time.Millisecond)

	site, err := svworldz.New(
		svworldz.WithStatsURL("http://localhost:9999/api/youtube-stats"),
		// much faster than production so the counters visibly move
		svworldz.WithRefreshInterval(5*time.Second),
		svworldz.WithPort(8080),
		svworldz.WithSnapshotCallback(func(s svworldz.Snapshot) {
			slog.Info("stats refreshed", "subscribers", s.Subscribers, "views", s.Views)
		}),
	)
	if err != nil {
		slog.Error("failed to create site", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   SV Worldz Demo                                      ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Stats refresh every 5s from a mock channel that     ║")
	fmt.Println("  ║   grows slowly and has occasional outages             ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := site.Start(ctx); err != nil {
		slog.Error("svworldz error", "error", err)
		os.Exit(1)
	}
}
