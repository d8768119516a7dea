package cli

import (
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command, which prints one employee.
func NewShowCmd() *cobra.Command {
	var (
		output  string
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show every field of one employee",
		Example: `  roster show 42
  roster show 42 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err = s.load(cmd, offline); err != nil {
				return err
			}
			record, err := s.engine.Lookup(id)
			if err != nil {
				return err
			}
			return renderRecord(cmd.OutOrStdout(), format, record)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format: table, json or yaml")
	cmd.Flags().BoolVar(&offline, "offline", false, "use the cached roster without contacting the employee service")

	return cmd
}
