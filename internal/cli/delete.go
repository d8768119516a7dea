package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/engine"
	"github.com/rshade/roster/internal/roster"
)

// ErrConfirmationRequired is returned when delete cannot ask for confirmation.
var ErrConfirmationRequired = errors.New("refusing to delete without confirmation: pass --yes when not running in a terminal")

// NewDeleteCmd creates the delete command. Several ids are deleted
// concurrently and the roster is refreshed once afterwards.
func NewDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete one or more employees",
		Example: `  roster delete 42
  roster delete 3 7 9 --yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			if !yes {
				if !isInteractive() {
					return ErrConfirmationRequired
				}
				// Names make the prompt readable; without them ids still work.
				if loadErr := s.load(cmd, false); loadErr != nil {
					if errors.Is(loadErr, roster.ErrNotAuthorized) {
						return loadErr
					}
					cmd.PrintErrf("Warning: %v\n", loadErr)
				}
				question := "Delete " + describeTargets(s.engine, ids) + "?"
				if !Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), question).Accepted {
					cmd.Println("Aborted.")
					return nil
				}
			}

			outcomes, err := s.engine.DeleteMany(cmd.Context(), ids)
			for _, o := range outcomes {
				switch {
				case o.Deleted:
					cmd.Printf("Deleted #%d\n", o.ID)
				case o.Err != nil:
					cmd.PrintErrf("Delete of #%d failed: %v\n", o.ID, o.Err)
				default:
					cmd.PrintErrf("Delete of #%d was declined\n", o.ID)
				}
			}
			if err != nil {
				if errors.Is(err, engine.ErrMutationFailed) {
					cmd.PrintErrf("Warning: %v\n", err)
				} else {
					return authError(err)
				}
			}

			if failed := countNotDeleted(outcomes); failed > 0 {
				return fmt.Errorf("%d of %d deletes did not succeed", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")

	return cmd
}

func describeTargets(eng *engine.Engine, ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if r, err := eng.Lookup(id); err == nil {
			parts = append(parts, fmt.Sprintf("#%d %s", id, r.Name))
		} else {
			parts = append(parts, fmt.Sprintf("#%d", id))
		}
	}
	noun := "employee"
	if len(ids) > 1 {
		noun = "employees"
	}
	return fmt.Sprintf("%d %s (%s)", len(ids), noun, strings.Join(parts, ", "))
}

func countNotDeleted(outcomes []engine.DeleteOutcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Deleted {
			n++
		}
	}
	return n
}
