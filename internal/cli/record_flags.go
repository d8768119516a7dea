package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/cli/pagination"
	"github.com/rshade/roster/internal/engine"
	"github.com/rshade/roster/internal/roster"
)

// ErrNothingToChange is returned by edit when no field flag was given.
var ErrNothingToChange = errors.New("nothing to change: pass at least one of --name, --job-title, --hire-date, --details, --status")

// ErrChangeDeclined is returned when the employee service answers a change with false.
var ErrChangeDeclined = errors.New("employee service declined the change")

// recordFlags are the employee field flags of add and edit.
type recordFlags struct {
	name     string
	jobTitle string
	hireDate string
	details  string
	status   string
}

func (f *recordFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "employee name")
	cmd.Flags().StringVar(&f.jobTitle, "job-title", "",
		"job title: Customer Support, IT Support Specialist or Software Engineer")
	cmd.Flags().StringVar(&f.hireDate, "hire-date", "", "hire date as YYYY-MM-DD")
	cmd.Flags().StringVar(&f.details, "details", "", "free-form notes")
	cmd.Flags().StringVar(&f.status, "status", "", `presence status: Active, Sick or "Out of Office" ("" clears it)`)
}

// apply copies the flags that were set on cmd into r and reports how many
// fields it touched.
func (f *recordFlags) apply(cmd *cobra.Command, r *roster.Record) (int, error) {
	changed := 0
	flags := cmd.Flags()

	if flags.Changed("name") {
		r.Name = f.name
		changed++
	}
	if flags.Changed("job-title") {
		title, err := pagination.ParseJobTitle(f.jobTitle)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", roster.ErrInvalidInput, err)
		}
		r.JobTitle = title
		changed++
	}
	if flags.Changed("hire-date") {
		r.HireDate = roster.HireDate(f.hireDate)
		changed++
	}
	if flags.Changed("details") {
		r.Details = f.details
		changed++
	}
	if flags.Changed("status") {
		status, err := parseStatus(f.status)
		if err != nil {
			return 0, err
		}
		r.Status = status
		changed++
	}
	return changed, nil
}

// mutationError turns the result of an engine mutation into the command
// error. An accepted change whose follow-up refresh failed only warns.
func mutationError(cmd *cobra.Command, accepted bool, err error) error {
	switch {
	case errors.Is(err, roster.ErrNotAuthorized):
		return authError(err)
	case accepted && errors.Is(err, engine.ErrMutationFailed):
		cmd.PrintErrf("Warning: %v\n", err)
		return nil
	case err != nil:
		return err
	case !accepted:
		return ErrChangeDeclined
	default:
		return nil
	}
}
