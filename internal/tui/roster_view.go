package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/roster/internal/cache"
	"github.com/rshade/roster/internal/roster"
)

// Table column widths.
const (
	colWidthID       = 5
	colWidthName     = 24
	colWidthJobTitle = 22
	colWidthHireDate = 10
	colWidthStatus   = 13
)

// View renders the current view.
func (m *RosterModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return CriticalStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateDetail:
		return RenderDetail(m.detail, m.width) + "\n" + MutedStyle.Render("[esc] Back  [x] Delete  [q] Quit")
	case ViewStateConfirmDelete:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderTable(),
			WarningStyle.Render(fmt.Sprintf("Delete #%d %s? [y/N]", m.pendingDelete.ID, m.pendingDelete.Name)),
		)
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderTable(),
			m.renderStatus(),
			m.help.View(m.keys),
		)
	}
}

func (m *RosterModel) renderTable() string {
	title := TitleStyle.Render("EMPLOYEES")
	header := HeaderStyle.Render(formatRow("ID", "Name", "Job Title", "Hire Date", "Status"))

	body := m.list.View()
	if m.list.Len() == 0 {
		body = MutedStyle.Italic(true).Render(m.emptyMessage())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, header, body)
}

func (m *RosterModel) emptyMessage() string {
	snap := m.engine.Snapshot()
	switch {
	case snap.SourceCount == 0:
		return "No employees."
	case snap.FilterValue != "":
		return fmt.Sprintf("No employees with job title %q.", snap.FilterValue)
	default:
		return "Choose a job title with [t]."
	}
}

func (m *RosterModel) renderStatus() string {
	snap := m.engine.Snapshot()

	parts := []string{
		fmt.Sprintf("Page %d/%d", snap.PageIndex, snap.TotalPages),
		fmt.Sprintf("%d of %d employees", len(snap.Filtered), snap.SourceCount),
		fmt.Sprintf("%d per page", snap.PageSize),
		"Sort: " + snap.SortKey.Label(),
	}
	if snap.FilterValue != "" {
		parts = append(parts, "Job title: "+string(snap.FilterValue))
	}
	if fetchedAt, cached := m.engine.FetchedAt(); cached {
		parts = append(parts, WarningStyle.Render("cached "+cache.FormatDuration(time.Since(fetchedAt))+" ago"))
	}
	line := LabelStyle.Render(strings.Join(parts, " · "))

	switch {
	case m.refreshing:
		line += "  " + m.loading.Inline()
	case m.notice != "":
		line += "  " + WarningStyle.Render(m.notice)
	}
	return line
}

// renderRow formats one employee for the table.
func (m *RosterModel) renderRow(r roster.Record, selected bool) string {
	row := formatRow(strconv.Itoa(r.ID), r.Name, string(r.JobTitle), r.HireDate.String(), string(r.Status))
	if selected {
		return SelectedStyle.Render(row)
	}
	return row
}

func formatRow(id, name, title, hired, status string) string {
	return fmt.Sprintf("%*s  %-*s  %-*s  %-*s  %s",
		colWidthID, truncate(id, colWidthID),
		colWidthName, truncate(name, colWidthName),
		colWidthJobTitle, truncate(title, colWidthJobTitle),
		colWidthHireDate, truncate(hired, colWidthHireDate),
		truncate(status, colWidthStatus),
	)
}

// RenderDetail renders every field of r in a box.
func RenderDetail(r roster.Record, width int) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(r.Name))
	sb.WriteString("\n\n")

	field := func(label, value string, style lipgloss.Style) {
		if value == "" {
			value = "-"
		}
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-11s", label)))
		sb.WriteString(style.Render(value))
		sb.WriteString("\n")
	}
	field("ID", strconv.Itoa(r.ID), ValueStyle)
	field("Job Title", string(r.JobTitle), ValueStyle)
	field("Hire Date", r.HireDate.String(), ValueStyle)
	field("Status", string(r.Status), statusStyle(string(r.Status)))
	if r.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(r.Details)
		sb.WriteString("\n")
	}

	boxWidth := min(max(width-2, 20), 80)
	return BoxStyle.Width(boxWidth).Render(strings.TrimRight(sb.String(), "\n"))
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
