package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/config"
)

// NewConfigInitCmd creates the config init command, which writes a config
// file holding the defaults and any --api-url or --token given.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at ~/.roster/config.yaml,
$ROSTER_CONFIG or the path given with --config.`,
		Example: `  # Create the configuration
  roster config init

  # Point it at a service and store a token
  roster config init --api-url https://employees.example.com --token "$TOKEN"

  # Overwrite an existing configuration
  roster config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	loaded := configFromCommand(cmd)

	cfg := config.New()
	cfg.SetPath(loaded.Path())
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(cfg.Path()); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", cfg.Path(), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid configuration: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.Path())

	return nil
}
