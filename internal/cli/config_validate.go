package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness.

This includes:
- YAML syntax
- api.base_url is an absolute http(s) URL and api.timeout a duration
- view.page_size is at least 1 and view.sort a known sort key
- cache.ttl_seconds is within the supported range`,
		Example: `  # Validate current configuration
  roster config validate

  # Validate and show detailed information
  roster config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate reloads the file strictly, since the pre-run tolerated
// errors for this command.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err = applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	timeout, _ := cfg.APITimeout()

	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.Path())
	cmd.Printf("  API URL: %s\n", cfg.API.BaseURL)
	cmd.Printf("  API token: %s\n", tokenState(cfg.API.Token))
	cmd.Printf("  API timeout: %s\n", timeout)
	cmd.Printf("  Page size: %d\n", cfg.View.PageSize)
	cmd.Printf("  Sort: %s\n", cfg.SortKey().Label())
	if cfg.Cache.Enabled {
		cmd.Printf("  Cache: %s (ttl %ds)\n", cfg.CacheDir(), cfg.Cache.TTLSeconds)
	} else {
		cmd.Println("  Cache: disabled")
	}
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}

func tokenState(token string) string {
	if token == "" {
		return "not set"
	}
	return "set"
}
