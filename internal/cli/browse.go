package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/cli/pagination"
	"github.com/rshade/roster/internal/logging"
	"github.com/rshade/roster/internal/tui"
)

// NewBrowseCmd creates the browse command, which opens the interactive
// table. Off a terminal it prints one page like list.
func NewBrowseCmd() *cobra.Command {
	flags := &listFlags{view: pagination.NewViewParams()}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the roster interactively",
		Long: `Opens an interactive table over the roster.

Keys: n/p or ←/→ page, ↑/↓ or j/k move, a/z sort by name, h/o sort by hire
date, t cycle job title, 0 reset sort, +/- page size, r refresh, enter
details, x delete, ? help, q quit.

When stdin or stdout is not a terminal the first page is printed instead,
as roster list would.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isInteractive() {
				logging.FromContext(cmd.Context()).Debug().Msg("not a terminal, falling back to list")
				return runList(cmd, flags)
			}
			return runBrowse(cmd, flags)
		},
	}
	flags.addFlags(cmd)

	return cmd
}

func runBrowse(cmd *cobra.Command, flags *listFlags) error {
	if err := flags.view.Validate(); err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	// A cached roster is shown at once while the first refresh runs.
	if _, warmErr := s.engine.Warm(); warmErr != nil {
		logging.FromContext(cmd.Context()).Debug().Err(warmErr).Msg("cached roster not used")
	}
	if err = flags.view.Apply(s.engine.Controller()); err != nil {
		return err
	}

	model := tui.NewRosterModel(cmd.Context(), s.engine)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running interactive table: %w", err)
	}
	return authError(model.Err())
}
