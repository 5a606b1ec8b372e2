package styles

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor   = lipgloss.Color("#7C3AED")
	SecondaryColor = lipgloss.Color("#06B6D4")
	SuccessColor   = lipgloss.Color("#22C55E")
	WarningColor   = lipgloss.Color("#EAB308")
	ErrorColor     = lipgloss.Color("#EF4444")
	MutedColor     = lipgloss.Color("#6B7280")
	StarColor      = lipgloss.Color("#F59E0B")
	TextColor      = lipgloss.Color("#F9FAFB")

	Muted = lipgloss.NewStyle().Foreground(MutedColor)

	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		Padding(0, 1)

	StatusBar = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	CardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	DetailBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1)

	StatValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	StatLabel = lipgloss.NewStyle().
			Foreground(MutedColor)

	StatusSuccess = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusError   = lipgloss.NewStyle().Foreground(ErrorColor)
	StatusPending = lipgloss.NewStyle().Foreground(WarningColor)
	Starred       = lipgloss.NewStyle().Foreground(StarColor)

	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	TableSelected = lipgloss.NewStyle().
			Background(PrimaryColor).
			Foreground(TextColor)

	PagerCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	ToastInfo = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Padding(0, 1)

	ToastSuccess = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Padding(0, 1)

	ToastWarn = lipgloss.NewStyle().
			Foreground(WarningColor).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Padding(0, 1)

	InputLabel = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(14)

	InputLabelFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor).
				Width(14)
)
