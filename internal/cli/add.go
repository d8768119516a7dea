package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/roster"
)

// NewAddCmd creates the add command, which creates an employee.
func NewAddCmd() *cobra.Command {
	flags := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Example: `  roster add --name "Ada Lovelace" --job-title "Software Engineer" --hire-date 2024-02-01
  roster add --name "Grace Hopper" --job-title "IT Support Specialist" --hire-date 2023-09-12 --status Active`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var record roster.Record
			if _, err := flags.apply(cmd, &record); err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			accepted, err := s.engine.Create(cmd.Context(), record)
			if err = mutationError(cmd, accepted, err); err != nil {
				return err
			}

			if created, ok := findCreated(s.engine.Controller().Source(), record); ok {
				cmd.Printf("Added employee #%d %s\n", created.ID, created.Name)
			} else {
				cmd.Printf("Added employee %s\n", record.Name)
			}
			return nil
		},
	}

	flags.addFlags(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("job-title")
	_ = cmd.MarkFlagRequired("hire-date")

	return cmd
}

// findCreated locates the record the service stored for want. The service
// does not return the new id, so the highest id with the same name, job title
// and hire date is taken.
func findCreated(source []roster.Record, want roster.Record) (roster.Record, bool) {
	want.Normalize()
	var found roster.Record
	ok := false
	for _, r := range source {
		if r.Name == want.Name && r.JobTitle == want.JobTitle && r.HireDate == want.HireDate && r.ID > found.ID {
			found, ok = r, true
		}
	}
	return found, ok
}
