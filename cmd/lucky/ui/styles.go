// Package ui provides the visual styling for the Lucky Thirteen terminal
// interface. The game is audio-first; the TUI is a sighted-player aid and
// a debugging surface, so the styling stays deliberately plain.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Light mode colors
	LightForeground = lipgloss.Color("#1c2733")
	LightPrimary    = lipgloss.Color("#005f87")
	LightAccent     = lipgloss.Color("#af8700")
	LightMuted      = lipgloss.Color("#8a8a8a")
	LightBorder     = lipgloss.Color("#d0d0d0")

	// Dark mode colors
	DarkForeground = lipgloss.Color("#e4e4e4")
	DarkPrimary    = lipgloss.Color("#5fafd7")
	DarkAccent     = lipgloss.Color("#ffd75f")
	DarkMuted      = lipgloss.Color("#6c6c6c")
	DarkBorder     = lipgloss.Color("#444444")

	// Semantic colors, shared by both modes
	Success = lipgloss.Color("#5faf5f")
	Failure = lipgloss.Color("#d75f5f")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// Styles holds the styled components of the game screen.
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style
	Board  lipgloss.Style

	// Board cells
	Cell         lipgloss.Style
	CursorCell   lipgloss.Style
	SelectedCell lipgloss.Style
	EmptyCell    lipgloss.Style

	// Text
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Transcript lipgloss.Style

	// Status
	Win  lipgloss.Style
	Lose lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	cell := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Foreground).
		Width(4).
		Align(lipgloss.Center)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Board: lipgloss.NewStyle().
			Padding(1, 2),

		Cell: cell,

		CursorCell: cell.
			BorderForeground(theme.Primary).
			Foreground(theme.Primary).
			Bold(true),

		SelectedCell: cell.
			BorderForeground(theme.Accent).
			Foreground(theme.Accent),

		EmptyCell: cell.
			Foreground(theme.Muted),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Transcript: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1),

		Win: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Lose: lipgloss.NewStyle().
			Foreground(Failure).
			Bold(true),
	}
}

// DefaultStyles returns styles for the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
