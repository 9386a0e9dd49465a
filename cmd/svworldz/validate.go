package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/svworldz/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate an svworldz configuration without starting the server.

This command parses the YAML, applies SVWORLDZ_* environment overrides,
expands environment variables, and validates all fields. It's useful for
CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  svworldz validate -c svworldz.yaml
  svworldz validate --config /etc/svworldz/svworldz.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// building options also resolves templates and decodes keys
	if _, err := config.BuildOptions(cfg, nil); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	source := "url"
	switch {
	case cfg.Stats.URLTemplate != "":
		source = "url_template"
	case cfg.Stats.YouTube != nil:
		source = "youtube"
	}

	delivery := "log only"
	if cfg.Contact.WebhookURL != "" {
		delivery = "webhook"
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Port:             %d\n", cfg.Port)
	fmt.Printf("  Locale:           %s\n", cfg.Locale)
	fmt.Printf("  Stats source:     %s\n", source)
	fmt.Printf("  Refresh interval: %s\n", cfg.Stats.RefreshInterval.Duration())
	fmt.Printf("  Contact delivery: %s\n", delivery)

	return nil
}
