package main

import "github.com/charmbracelet/lipgloss"

var (
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1D3"))
	promptStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	formStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
