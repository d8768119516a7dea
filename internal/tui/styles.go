package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("229")
	ColorSelected  = lipgloss.Color("57")
	ColorSpinner   = lipgloss.Color("205")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorOK        = lipgloss.Color("42")
	ColorBorder    = lipgloss.Color("240")
)

// Shared styles.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			BorderBottom(true)

	SelectedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Background(ColorSelected)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// statusStyle colors an employee status.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "Active":
		return OKStyle
	case "Sick":
		return WarningStyle
	case "Out of Office":
		return MutedStyle
	default:
		return lipgloss.NewStyle()
	}
}
