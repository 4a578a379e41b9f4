package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, active tab
	ColorHighlight = "205" // Magenta - for borders, leader keys
	ColorDanger    = "196" // Red - for rejected selections, failed exports
	ColorMuted     = "241" // Gray - for hints, inactive tabs
	ColorText      = "252" // Light gray - for normal text
	ColorSuccess   = "42"  // Green - for completed exports
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title        lipgloss.Style // App heading
	TitleWarning lipgloss.Style // Notice heading for failures
	TitleSuccess lipgloss.Style // Notice heading for success

	Box       lipgloss.Style // Notice box
	BoxDanger lipgloss.Style // Notice box for failures

	Tab       lipgloss.Style // Inactive tab
	TabActive lipgloss.Style // Active tab
	TabBar    lipgloss.Style // Row holding the tabs

	Muted   lipgloss.Style
	Normal  lipgloss.Style
	Hint    lipgloss.Style // Status line and modal hints
	Status  lipgloss.Style // Active view name in the status line
	Details lipgloss.Style // Secondary modal text
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	TitleSuccess: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorSuccess)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	Tab: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TabBar: lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color(ColorMuted)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
}
