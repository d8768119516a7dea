package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/cli/pagination"
	"github.com/rshade/roster/internal/export"
	"github.com/rshade/roster/internal/view"
)

// NewExportCmd creates the export command, which writes the current page or
// the whole filtered view to an Excel workbook.
func NewExportCmd() *cobra.Command {
	var (
		file    string
		scope   string
		offline bool
	)
	viewParams := pagination.NewViewParams()

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export employees to an .xlsx workbook",
		Example: `  # The first page, as list would show it
  roster export --file roster.xlsx

  # Every software engineer, newest first
  roster export --file engineers.xlsx --scope all --job-title "Software Engineer" --sort hire-date`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := export.ParseScope(scope)
			if err != nil {
				return err
			}
			if err = viewParams.Validate(); err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err = s.load(cmd, offline); err != nil {
				return err
			}
			if err = viewParams.Apply(s.engine.Controller()); err != nil {
				return err
			}

			snap := s.engine.Snapshot()
			if err = writeExport(file, snap, sc); err != nil {
				return err
			}
			cmd.Printf("Exported %d employees to %s\n", len(export.Records(snap, sc)), file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "workbook to write (.xlsx)")
	cmd.Flags().StringVar(&scope, "scope", string(export.ScopePage), "rows to export: page or all")
	cmd.Flags().BoolVar(&offline, "offline", false, "use the cached roster without contacting the employee service")
	viewParams.AddFlags(cmd)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func writeExport(path string, snap view.Snapshot, scope export.Scope) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err = export.WriteXLSX(f, snap, scope); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
