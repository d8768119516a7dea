package cli

import (
	"github.com/spf13/cobra"
)

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration with the token masked.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after the config file, environment variables and
global flags have been applied. The API token is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			if format == OutputTable {
				format = OutputYAML
			}
			redacted := configFromCommand(cmd).Redacted()
			return encodeStructured(cmd.OutOrStdout(), format, redacted)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", OutputYAML, "output format: yaml or json")

	return cmd
}
