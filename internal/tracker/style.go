package tracker

import "github.com/charmbracelet/lipgloss"

// Style holds the lipgloss styles of the tracker screen.
type Style struct {
	Base      lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Idle      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Input     lipgloss.Style
}

// NewStyle returns the tracker styles for a dark or light terminal.
func NewStyle(dark bool) Style {
	main, hint := lipgloss.Color("252"), lipgloss.Color("244")
	if !dark {
		main, hint = lipgloss.Color("235"), lipgloss.Color("240")
	}

	return Style{
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Main:      lipgloss.NewStyle().Foreground(main).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(main),
		Hint:      lipgloss.NewStyle().Foreground(hint),
		Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Paused:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Idle:      lipgloss.NewStyle().Foreground(hint).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1).Width(30),
	}
}
