package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorBlue   = lipgloss.Color("#4F8EF7")
	ColorGray   = lipgloss.Color("#6C7086")
	ColorWhite  = lipgloss.Color("#E6E6E6")
	ColorNavy   = lipgloss.Color("#1B1F3B")
	ColorRed    = lipgloss.Color("#F25F5C")
	ColorOrange = lipgloss.Color("#F5A623")
	ColorYellow = lipgloss.Color("#F7D154")
	ColorGreen  = lipgloss.Color("#44C767")
	ColorIndigo = lipgloss.Color("#6366F1")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorGray)

	activeSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorBlue)

	deckTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(ColorBlue).
				Foreground(ColorWhite)

	rowStyle = lipgloss.NewStyle().Foreground(ColorWhite)

	keyStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorNavy).
			Bold(true).
			Padding(0, 1)
)

// statusColor maps dealership statuses and severities to a colour.
func statusColor(status string) lipgloss.Color {
	switch status {
	case "Approval Pending", "Parts Hold", "At Risk", "crit", "fail", "Negotiation", "HIGH":
		return ColorRed
	case "Diagnosis", "F&I Pending", "warn", "In Transit", "Financial Review":
		return ColorOrange
	case "Working", "Approved", "Checked-In", "Test Drive":
		return ColorBlue
	case "Ready", "Sold", "Closed", "On Target", "pass", "COMPLETED":
		return ColorGreen
	default:
		return ColorGray
	}
}

// probabilityColor bands a close probability.
func probabilityColor(p int) lipgloss.Color {
	switch {
	case p >= 80:
		return ColorGreen
	case p >= 50:
		return ColorOrange
	default:
		return ColorRed
	}
}
