package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/cli/pagination"
	"github.com/rshade/roster/internal/logging"
)

// listFlags are the flags shared by list and the non-interactive browse.
type listFlags struct {
	view    *pagination.ViewParams
	output  string
	offline bool
}

func (f *listFlags) addFlags(cmd *cobra.Command) {
	f.view.AddFlags(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", OutputTable, "output format: table, json or yaml")
	cmd.Flags().BoolVar(&f.offline, "offline", false, "use the cached roster without contacting the employee service")
}

// NewListCmd creates the list command, which prints one page of the roster.
func NewListCmd() *cobra.Command {
	flags := &listFlags{view: pagination.NewViewParams()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees one page at a time",
		Long: `Fetches the roster and prints one page of it.

Sorting, job-title filtering and pagination are applied in that order; a
page past the end is clamped to the last page.`,
		Example: `  # First page in the configured order
  roster list

  # Names Z to A, page 3 of 5-row pages
  roster list --sort name-reverse --page-size 5 --page 3

  # IT support as YAML, from the cache
  roster list --job-title "IT Support Specialist" --output yaml --offline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags)
		},
	}
	flags.addFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, flags *listFlags) error {
	format, err := parseOutputFormat(flags.output)
	if err != nil {
		return err
	}
	if err = flags.view.Validate(); err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	if err = s.load(cmd, flags.offline); err != nil {
		return err
	}
	if err = flags.view.Apply(s.engine.Controller()); err != nil {
		return err
	}

	snap := s.engine.Snapshot()
	logging.FromContext(cmd.Context()).Debug().
		Str("operation", "list").
		Int("page", snap.PageIndex).
		Int("total_pages", snap.TotalPages).
		Int("rows", len(snap.Page)).
		Msg("rendering page")

	return renderPage(cmd.OutOrStdout(), format, snap)
}
