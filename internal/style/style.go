package style

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// --- Reusable Colors ---
var (
	colorPink      = lipgloss.Color("205")
	colorDarkGray  = lipgloss.Color("240")
	colorLightGray = lipgloss.Color("229")
	colorCyan      = lipgloss.Color("212")
	colorPurple    = lipgloss.Color("99")
	colorRed       = lipgloss.Color("196")
	colorGreen     = lipgloss.Color("42")
)

// --- Status Line ---
var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorGreen)
	IdleStyle    = lipgloss.NewStyle().Faint(true)
)

// --- Form Styles ---
var (
	TitleStyle         = lipgloss.NewStyle().Bold(true).Foreground(colorPink).Padding(1, 0)
	StepNumberStyle    = lipgloss.NewStyle().Foreground(colorLightGray).Background(colorDarkGray).Padding(0, 1)
	StepStyle          = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderTop(false).BorderRight(false).BorderBottom(false).BorderForeground(colorDarkGray).PaddingLeft(2).MarginLeft(1)
	FocusedStepStyle   = StepStyle.BorderForeground(colorCyan)
	ButtonStyle        = lipgloss.NewStyle().Foreground(colorLightGray).Background(colorPurple).Padding(0, 2)
	HighlightFontStyle = lipgloss.NewStyle().Foreground(colorCyan)
)

// --- File Browser Styles ---
var (
	CursorStyle     = lipgloss.NewStyle().Foreground(colorCyan).SetString("> ")
	SelectedStyle   = lipgloss.NewStyle().Foreground(colorPink).SetString("[x] ")
	DeselectedStyle = lipgloss.NewStyle().SetString("[ ] ")
	DirStyle        = lipgloss.NewStyle().Foreground(colorPurple)
	HelpStyle       = lipgloss.NewStyle().Faint(true)
)

// NewSpinner creates a spinner with a consistent style.
func NewSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPink)
	return s
}
