package main

import "github.com/charmbracelet/lipgloss"

// Output colors, shared with the adaptive light/dark palette.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}
)

type cliStyles struct {
	title      lipgloss.Style
	capability lipgloss.Style
	action     lipgloss.Style
	assertion  lipgloss.Style
	variant    lipgloss.Style
	doc        lipgloss.Style
	success    lipgloss.Style
	errorLabel lipgloss.Style
}

var styles = cliStyles{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary),
	capability: lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		MarginTop(1),
	action: lipgloss.NewStyle().
		PaddingLeft(2),
	assertion: lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(colorWarning),
	variant: lipgloss.NewStyle().
		Foreground(colorMuted),
	doc: lipgloss.NewStyle().
		PaddingLeft(4).
		Foreground(colorMuted),
	success: lipgloss.NewStyle().
		Foreground(colorSuccess),
	errorLabel: lipgloss.NewStyle().
		Bold(true).
		Foreground(colorError),
}
