package tui

import "github.com/charmbracelet/lipgloss"

var (
	cyan    = lipgloss.Color("#22d3ee")
	emerald = lipgloss.Color("#34d399")
	amber   = lipgloss.Color("#fbbf24")
	slate   = lipgloss.Color("#64748b")
	white   = lipgloss.Color("#f8fafc")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(cyan)
	phaseStyle    = lipgloss.NewStyle().Bold(true).Foreground(white).Background(lipgloss.Color("#0f172a")).Padding(0, 1)
	headlineStyle = lipgloss.NewStyle().Bold(true).Foreground(white)
	captionStyle  = lipgloss.NewStyle().Foreground(slate)
	logStyle      = lipgloss.NewStyle().Foreground(emerald)
	scoreStyle    = lipgloss.NewStyle().Bold(true).Foreground(emerald)
	noticeStyle   = lipgloss.NewStyle().Foreground(amber)
	helpStyle     = lipgloss.NewStyle().Foreground(slate)
	frameStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(slate).
			Padding(0, 2)

	stepPending  = lipgloss.NewStyle().Foreground(slate)
	stepActive   = lipgloss.NewStyle().Bold(true).Foreground(cyan)
	stepComplete = lipgloss.NewStyle().Foreground(emerald)
)
