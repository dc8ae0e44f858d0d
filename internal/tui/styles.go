package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B35")).MarginBottom(1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10A37F"))
	kindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(14)
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#10A37F"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5484D"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).MarginTop(1)
	labelStyle    = lipgloss.NewStyle().Bold(true)
)
