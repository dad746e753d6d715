package tui

import "charm.land/lipgloss/v2"

var (
	ColorBg        = lipgloss.Color("#0d1117")
	ColorDarkGray  = lipgloss.Color("#2a2a2a")
	ColorGray      = lipgloss.Color("#8b949e")
	ColorHighlight = lipgloss.Color("#00AA00") // Matrix green
	ColorError     = lipgloss.Color("#ff0000")
	ColorBorder    = ColorDarkGray
)

// styles groups the pre-built lipgloss styles the views render with.
type styles struct {
	Border      lipgloss.Style
	StatusText  lipgloss.Style
	StatusLabel lipgloss.Style
	Error       lipgloss.Style
	BgFill      lipgloss.Style
}

func newStyles() styles {
	return styles{
		Border:      lipgloss.NewStyle().Foreground(ColorBorder),
		StatusText:  lipgloss.NewStyle().Background(ColorBg).Foreground(ColorGray),
		StatusLabel: lipgloss.NewStyle().Background(ColorBg).Foreground(ColorHighlight),
		Error:       lipgloss.NewStyle().Background(ColorBg).Foreground(ColorError),
		BgFill:      lipgloss.NewStyle().Background(ColorBg),
	}
}
