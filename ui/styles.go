package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorYellow   = lipgloss.Color("3")
	ColorOrange   = lipgloss.Color("208")
	ColorRed      = lipgloss.Color("1")
	ColorMagenta  = lipgloss.Color("5")
	ColorBlue     = lipgloss.Color("4")
	ColorCyan     = lipgloss.Color("6")
	ColorGreen    = lipgloss.Color("2")
	ColorWhite    = lipgloss.Color("7")
	ColorDimWhite = lipgloss.Color("243")
	ColorSurface  = lipgloss.Color("236")
)

var (
	SelectedRowStyle = lipgloss.NewStyle().Background(ColorSurface)

	GraphStyle     = lipgloss.NewStyle().Foreground(ColorDimWhite)
	PendingStyle   = lipgloss.NewStyle().Foreground(ColorOrange)
	CommitIDStyle  = lipgloss.NewStyle().Foreground(ColorYellow)
	AuthorStyle    = lipgloss.NewStyle().Foreground(ColorGreen)
	TimestampStyle = lipgloss.NewStyle().Foreground(ColorBlue)
	RefStyle       = lipgloss.NewStyle().Foreground(ColorMagenta).Bold(true)
	HeadRefStyle   = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	SubjectStyle   = lipgloss.NewStyle().Foreground(ColorWhite)
	DimmedStyle    = lipgloss.NewStyle().Foreground(ColorDimWhite)
	MatchStyle     = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)

	DetailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorYellow).
				Padding(0, 1)
	DetailTitleStyle = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	DetailLabelStyle = lipgloss.NewStyle().Foreground(ColorDimWhite).Width(11)

	HelpBarStyle  = lipgloss.NewStyle().Background(ColorSurface).Foreground(ColorWhite)
	HelpKeyStyle  = lipgloss.NewStyle().Background(ColorSurface).Foreground(ColorYellow).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Background(ColorSurface).Foreground(ColorDimWhite)

	SearchPromptStyle = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
)
