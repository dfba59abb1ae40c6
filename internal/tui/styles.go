package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorYellow    = lipgloss.Color("#F1C40F")
	colorRed       = lipgloss.Color("#E74C3C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	inputTextStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	idStyle = lipgloss.NewStyle().
		Foreground(colorDarkGray)

	timeStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	bodyStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	editedStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	starStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true)
)

// colors a display name with the color the server assigned
func nameStyle(hex string) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if hex == "" {
		return style.Foreground(colorWhite)
	}

	return style.Foreground(lipgloss.Color(hex))
}
