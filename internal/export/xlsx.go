// Package export writes the current roster view to spreadsheet files.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/roster/internal/roster"
	"github.com/rshade/roster/internal/view"
)

// SheetName is the worksheet holding the exported roster.
const SheetName = "Employees"

// Scope selects which part of a view snapshot is exported.
type Scope string

const (
	// ScopePage exports the visible page only.
	ScopePage Scope = "page"
	// ScopeAll exports every record that passes the current filter, in view order.
	ScopeAll Scope = "all"
)

// ErrUnknownScope is returned by ParseScope for anything but page or all.
var ErrUnknownScope = errors.New("unknown export scope")

// ParseScope parses "page" or "all", case-insensitively. Empty means ScopePage.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopePage:
		return ScopePage, nil
	case ScopeAll:
		return ScopeAll, nil
	default:
		return "", fmt.Errorf("%w: %q (want page or all)", ErrUnknownScope, s)
	}
}

// Header is the first row of the sheet.
func Header() []string {
	return []string{"ID", "Name", "Job Title", "Hire Date", "Status", "Details"}
}

// Records returns the records scope selects from snap.
func Records(snap view.Snapshot, scope Scope) []roster.Record {
	if scope == ScopeAll {
		return snap.Filtered
	}
	return snap.Page
}

// WriteXLSX writes the records scope selects from snap as an xlsx workbook.
func WriteXLSX(w io.Writer, snap view.Snapshot, scope Scope) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := Header()
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := styleHeader(f, len(header)); err != nil {
		return err
	}

	for i, r := range Records(snap, scope) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locating row %d: %w", i+2, err)
		}
		row := []any{r.ID, r.Name, string(r.JobTitle), r.HireDate.String(), string(r.Status), r.Details}
		if err = f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing record %d: %w", r.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func styleHeader(f *excelize.File, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("locating header: %w", err)
	}
	if err = f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err = f.SetColWidth(SheetName, "B", "C", 24); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err = f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}
	return nil
}
