package tui

import "github.com/charmbracelet/lipgloss"

// Gradient palette taken from the web page's background.
var (
	ColorBgHighlight = lipgloss.Color("#2A3F6E")

	ColorFgPrimary = lipgloss.Color("#ECEFF4")
	ColorFgMuted   = lipgloss.Color("#8A93A6")

	ColorIndigo = lipgloss.Color("#2A5298")
	ColorPurple = lipgloss.Color("#A044FF")
	ColorPlum   = lipgloss.Color("#6D1B7B")
	ColorGreen  = lipgloss.Color("#98C379")
	ColorYellow = lipgloss.Color("#E5C07B")
	ColorRed    = lipgloss.Color("#E06C75")

	ColorBorder = lipgloss.Color("#3F4451")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPurple).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Italic(true)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(ColorIndigo).
				Bold(true).
				MarginTop(1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	WelcomeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 3)

	// Name cards
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorFgPrimary).
			Padding(0, 2)

	CardCursorStyle = CardStyle.
			BorderForeground(ColorIndigo)

	CardSelectedStyle = CardStyle.
				BorderForeground(ColorPurple).
				Foreground(ColorPurple).
				Bold(true)

	ActionStyle = lipgloss.NewStyle().
			Background(ColorPlum).
			Foreground(ColorFgPrimary).
			Bold(true).
			Padding(0, 2)

	ModelStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	LoadingStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPurple).
			Foreground(ColorFgPrimary).
			Padding(1, 4)

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorRed).
			Foreground(ColorFgPrimary).
			Padding(1, 4)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)
)
