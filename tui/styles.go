package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles of the search surface.
type Styles struct {
	Title    lipgloss.Style
	Dialog   lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Match    lipgloss.Style
	URL      lipgloss.Style
	Error    lipgloss.Style
	HelpKey  lipgloss.Style
	User     lipgloss.Style
	Bot      lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() *Styles {
	var (
		primary = lipgloss.Color("#7C3AED")
		accent  = lipgloss.Color("#06B6D4")
		muted   = lipgloss.Color("#6C7086")
		warn    = lipgloss.Color("#F9E2AF")
		failure = lipgloss.Color("#F38BA8")
		border  = lipgloss.Color("#45475A")
	)

	return &Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Normal:   lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Match:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E1E2E")).Background(warn),
		URL:      lipgloss.NewStyle().Foreground(accent),
		Error:    lipgloss.NewStyle().Foreground(failure),
		HelpKey:  lipgloss.NewStyle().Bold(true),
		User:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Bot:      lipgloss.NewStyle().Bold(true).Foreground(primary),
	}
}
