// Package main is the entry point for the svworldz CLI.
//
// The SV Worldz site can be embedded as a library or run as a standalone
// binary configured by YAML and the environment. This CLI provides the
// standalone binary.
//
// Usage:
//
//	svworldz serve -c svworldz.yaml    # Start the site
//	svworldz validate -c svworldz.yaml # Validate configuration
//	svworldz fetch -c svworldz.yaml    # Fetch the channel stats once
//	svworldz count 774000              # Preview the animated counter
//	svworldz version                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "svworldz",
	Short: "The SV Worldz marketing site",
	Long: `svworldz serves the SV Worldz marketing site.

It polls the channel stats endpoint every minute, keeps the last good
numbers, and pushes them to open pages with Server-Sent Events. The site
also carries the about, contact, privacy and terms pages.

Quick start:
  1. Create a config file (svworldz.yaml), or set SVWORLDZ_STATS_URL
  2. Run: svworldz serve -c svworldz.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  port: 8080
  stats:
    url: https://stats.example.com/api/youtube-stats
    refresh_interval: 60s`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this svworldz binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("svworldz %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
