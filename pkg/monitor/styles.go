package monitor

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	primaryColor = lipgloss.Color("212")
	errorColor   = lipgloss.Color("196")
	warningColor = lipgloss.Color("214")
	cyanColor    = lipgloss.Color("45")
	mutedColor   = lipgloss.Color("241")
	borderColor  = lipgloss.Color("240")
	textColor    = lipgloss.Color("252")
	brightColor  = lipgloss.Color("255")
	rowBgColor   = lipgloss.Color("237")
)

// Buttons
var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	buttonHoverStyle = lipgloss.NewStyle().
				Foreground(brightColor).
				Background(lipgloss.Color("245")).
				Padding(0, 2)

	buttonPrimaryStyle = lipgloss.NewStyle().
				Foreground(brightColor).
				Background(primaryColor).
				Bold(true).
				Padding(0, 2)

	buttonDangerStyle = lipgloss.NewStyle().
				Foreground(brightColor).
				Background(errorColor).
				Bold(true).
				Padding(0, 2)

	buttonDangerHoverStyle = lipgloss.NewStyle().
				Foreground(brightColor).
				Background(lipgloss.Color("203")).
				Padding(0, 2)
)

// Title bar
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brightColor).
			Background(primaryColor).
			Padding(0, 1)

	titleBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236"))

	titleActionStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	titleActionHoverStyle = lipgloss.NewStyle().
				Foreground(brightColor).
				Background(errorColor).
				Padding(0, 1)
)

// Inputs
var (
	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	inputFocusedStyle = inputBoxStyle.
				BorderForeground(primaryColor)

	inputHoverStyle = inputBoxStyle.
			BorderForeground(cyanColor)

	labelStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	cursorStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
)

// List
var (
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cyanColor)

	listItemStyle = lipgloss.NewStyle().
			Foreground(textColor)

	listSelectedStyle = lipgloss.NewStyle().
				Background(rowBgColor).
				Foreground(brightColor).
				Bold(true)

	listHoverStyle = lipgloss.NewStyle().
			Background(rowBgColor).
			Foreground(brightColor)

	listCursorStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)

// Panels and text
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	messagePanelStyle = panelStyle.
				BorderForeground(warningColor)

	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(brightColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
)
