// Package ui provides terminal styling for brickseed command output.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	teal   = lipgloss.Color("#00C4B3")
	slate  = lipgloss.Color("#64748B")
	red    = lipgloss.Color("#E53935")
	yellow = lipgloss.Color("#FFC107")
)

// Styles holds the styled components used by command output.
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns the brickseed color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(teal).Bold(true),
		Bold:    lipgloss.NewStyle().Bold(true),
		Body:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(slate),
		Success: lipgloss.NewStyle().Foreground(teal).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(yellow).Bold(true),
	}
}
