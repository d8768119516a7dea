package cli

import (
	"github.com/spf13/cobra"
)

// NewEditCmd creates the edit command. Only the field flags that are given
// change; the rest of the record is sent as last fetched.
func NewEditCmd() *cobra.Command {
	var output string
	flags := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an employee",
		Example: `  # Mark an employee as out of office
  roster edit 42 --status "Out of Office" --details "Back on the 3rd"

  # Clear the status
  roster edit 42 --status ""`,
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
			if err = s.load(cmd, false); err != nil {
				return err
			}
			record, err := s.engine.Lookup(id)
			if err != nil {
				return err
			}

			changed, err := flags.apply(cmd, &record)
			if err != nil {
				return err
			}
			if changed == 0 {
				return ErrNothingToChange
			}

			accepted, err := s.engine.Update(cmd.Context(), record)
			if err = mutationError(cmd, accepted, err); err != nil {
				return err
			}

			// Show the record as the service now has it.
			if saved, lookupErr := s.engine.Lookup(id); lookupErr == nil {
				record = saved
			}
			cmd.Printf("Updated employee #%d\n", record.ID)
			return renderRecord(cmd.OutOrStdout(), format, record)
		},
	}

	flags.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format for the saved record: table, json or yaml")

	return cmd
}
