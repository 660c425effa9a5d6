package tui

import "github.com/charmbracelet/lipgloss"

const (
	accent = lipgloss.Color("170")
	border = lipgloss.Color("62")
	muted  = lipgloss.Color("#888888")
)

var (
	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5FD7")).MarginLeft(1)
	userStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 1)
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

	paneStyle        = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
	focusedPaneStyle = paneStyle.BorderForeground(accent)

	cardStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedCardStyle = lipgloss.NewStyle().PaddingLeft(1).BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(accent)
	cardNameStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFDF5"))
	ratingStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	locationStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AFAFAF"))
	badgeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("238")).Padding(0, 1).MarginRight(1)

	mutedStyle = lipgloss.NewStyle().Foreground(muted)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginLeft(1)

	fieldLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AFAFAF")).Width(9)
	activeLabelStyle  = fieldLabelStyle.Foreground(accent).Bold(true)
	buttonStyle       = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("238"))
	activeButtonStyle = buttonStyle.Background(accent).Bold(true)
)
