package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor   = lipgloss.Color("#3498DB")
	secondaryColor = lipgloss.Color("#2C3E50")
	accentColor    = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	warnColor      = lipgloss.Color("#F59E0B")
	textMuted      = lipgloss.Color("#94A3B8")
	textLight      = lipgloss.Color("#F8FAFC")
)

var (
	appStyle = lipgloss.NewStyle().Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Background(secondaryColor).
			Foreground(textLight).
			Bold(true).
			Padding(0, 2)

	roleBadgeStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(textLight).
			Bold(true).
			Padding(0, 1)

	dashboardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	searchStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(textMuted).
			Padding(0, 1)

	focusedSearchStyle = searchStyle.BorderForeground(primaryColor)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().Foreground(textMuted)

	fileStyle = lipgloss.NewStyle().Foreground(textMuted).Italic(true)

	infoStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)

	emptyStyle = lipgloss.NewStyle().Foreground(textMuted).Padding(1, 2)
)

func gridStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(textLight).
		Background(primaryColor).
		Bold(false)
	return s
}
