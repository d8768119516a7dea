package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rshade/roster/internal/cli/pagination"
	"github.com/rshade/roster/internal/roster"
	"github.com/rshade/roster/internal/view"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ErrUnsupportedOutput is returned for an unknown --output value.
var ErrUnsupportedOutput = errors.New("unsupported output format")

const tabPadding = 2

func parseOutputFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", OutputTable:
		return OutputTable, nil
	case OutputJSON, OutputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, json or yaml)", ErrUnsupportedOutput, s)
	}
}

// listOutput is the structured form of one page.
type listOutput struct {
	Employees  []roster.Record           `json:"employees"  yaml:"employees"`
	Pagination pagination.PaginationMeta `json:"pagination" yaml:"pagination"`
}

// renderPage writes the current page of snap in format.
func renderPage(w io.Writer, format string, snap view.Snapshot) error {
	switch format {
	case OutputJSON, OutputYAML:
		out := listOutput{Employees: snap.Page, Pagination: pagination.NewPaginationMeta(snap)}
		if out.Employees == nil {
			out.Employees = []roster.Record{}
		}
		return encodeStructured(w, format, out)
	default:
		return renderTable(w, snap)
	}
}

// renderRecord writes one record in format.
func renderRecord(w io.Writer, format string, r roster.Record) error {
	switch format {
	case OutputJSON, OutputYAML:
		return encodeStructured(w, format, r)
	default:
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		fmt.Fprintf(tw, "ID:\t%d\n", r.ID)
		fmt.Fprintf(tw, "Name:\t%s\n", r.Name)
		fmt.Fprintf(tw, "Job Title:\t%s\n", r.JobTitle)
		fmt.Fprintf(tw, "Hire Date:\t%s\n", r.HireDate)
		fmt.Fprintf(tw, "Status:\t%s\n", orDash(string(r.Status)))
		fmt.Fprintf(tw, "Details:\t%s\n", orDash(r.Details))
		return tw.Flush()
	}
}

func encodeStructured(w io.Writer, format string, v any) error {
	if format == OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(w io.Writer, snap view.Snapshot) error {
	if len(snap.Page) == 0 {
		_, err := fmt.Fprintln(w, emptyMessage(snap))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tJob Title\tHire Date\tStatus")
	fmt.Fprintln(tw, "--\t----\t---------\t---------\t------")
	for _, r := range snap.Page {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			strconv.Itoa(r.ID), r.Name, r.JobTitle, r.HireDate, orDash(string(r.Status)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nPage %d/%d · %d of %d employees · sort: %s%s\n",
		snap.PageIndex, snap.TotalPages, len(snap.Filtered), snap.SourceCount,
		snap.SortKey.Label(), jobTitleSuffix(snap))
	return err
}

func emptyMessage(snap view.Snapshot) string {
	switch {
	case snap.SourceCount == 0:
		return "No employees."
	case snap.FilterValue != "":
		return fmt.Sprintf("No employees with job title %q.", snap.FilterValue)
	default:
		return "No employees to show."
	}
}

func jobTitleSuffix(snap view.Snapshot) string {
	if snap.FilterValue == "" {
		return ""
	}
	return " · job title: " + string(snap.FilterValue)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
