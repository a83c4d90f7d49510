package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the terminal UI.
type Styles struct {
	Sidebar   lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	TopBar    lipgloss.Style
	Title     lipgloss.Style
	Card      lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Overlay   lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles mirrors the dark slate palette of the web shell.
func DefaultStyles() Styles {
	accent := lipgloss.Color("#6366f1")
	muted := lipgloss.Color("#94a3b8")
	return Styles{
		Sidebar:   lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("#1e293b")),
		NavItem:   lipgloss.NewStyle().PaddingLeft(1),
		NavActive: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(accent),
		TopBar:    lipgloss.NewStyle().Bold(true).PaddingBottom(1),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22d3ee")).PaddingBottom(1),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#334155")).Padding(0, 1).MarginRight(1),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("#22d3ee")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),
		Overlay:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2),
		Help:      lipgloss.NewStyle().Foreground(muted).PaddingTop(1),
	}
}
