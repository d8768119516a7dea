// Package cli implements the roster command line.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/config"
	"github.com/rshade/roster/internal/logging"
	"github.com/rshade/roster/internal/tui"
)

// annotationConfigOptional marks commands that must run even when the config
// file is unreadable or invalid, such as config init and config validate.
const annotationConfigOptional = "roster/config-optional"

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isInteractive reports whether the process can prompt and run the table.
// Tests replace it.
var isInteractive = tui.IsInteractive //nolint:gochecknoglobals // Test seam for TTY detection.

// NewRootCmd creates the root Cobra command for the roster CLI.
// It loads configuration, wires up logging and tracing, and registers the
// employee and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "roster",
		Short:         "Browse and manage the employee roster",
		Long:          "roster lists, sorts, filters and pages the employee roster and edits it through the employee service",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("debug", false, "enable debug logging")
	flags.String("config", "", "config file (default $ROSTER_CONFIG or ~/.roster/config.yaml)")
	flags.String("api-url", "", "employee service base URL (overrides config and $ROSTER_API_URL)")
	flags.String("token", "", "bearer token for the employee service (overrides config and $ROSTER_API_TOKEN)")
	flags.Bool("skip-version-check", false, "skip the employee service version compatibility check")
	flags.Int("cache-ttl", 0, "cache TTL in seconds (0 = use config default, overrides config file and env var)")

	cmd.AddCommand(
		NewListCmd(), NewShowCmd(), NewAddCmd(), NewEditCmd(), NewDeleteCmd(),
		NewBrowseCmd(), NewExportCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # List the first page of employees
  roster list

  # Newest hires first, 20 per page, page 2
  roster list --sort hire-date --page-size 20 --page 2

  # Only software engineers, as JSON
  roster list --job-title "Software Engineer" --output json

  # Browse interactively
  roster browse

  # Add an employee
  roster add --name "Ada Lovelace" --job-title "Software Engineer" --hire-date 2024-02-01

  # Export every customer support employee to a spreadsheet
  roster export --file support.xlsx --scope all --job-title "Customer Support"

  # Initialize configuration
  roster config init`

// loadConfig reads the config file, applies flag overrides, validates the
// result and stores it in the command context.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	optional := isConfigOptional(cmd)

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		if !optional {
			return nil, err
		}
		cfg = config.New()
		if path != "" {
			cfg.SetPath(path)
		}
	}

	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return nil, err
	}
	if !optional {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	cmd.SetContext(config.ContextWithConfig(cmd.Context(), cfg))
	return cfg, nil
}

// applyFlagOverrides copies explicitly set global flags over cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.BaseURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("token") {
		cfg.API.Token, _ = flags.GetString("token")
	}

	// Negative values would make every cache entry expire immediately.
	cacheTTL, _ := flags.GetInt("cache-ttl")
	if cacheTTL < 0 {
		return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
	}
	if cacheTTL > 0 {
		cfg.Cache.TTLSeconds = cacheTTL
	}
	return nil
}

func isConfigOptional(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationConfigOptional]; ok {
			return true
		}
	}
	return false
}

// configFromCommand returns the config loaded by the root pre-run.
func configFromCommand(cmd *cobra.Command) *config.Config {
	return config.FromContext(cmd.Context())
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration management commands",
		Annotations: map[string]string{annotationConfigOptional: "true"},
	}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), NewConfigShowCmd())
	return cmd
}
