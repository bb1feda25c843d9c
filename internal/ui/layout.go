package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the radar panel and side panel horizontally, with the
// menu bar on top and status bar on bottom. An empty side panel (fullscreen)
// leaves the radar alone in the middle row.
func ComposeLayout(menuBar, radarPanel, sidePanel, statusBar string) string {
	middle := radarPanel
	if sidePanel != "" {
		middle = lipgloss.JoinHorizontal(lipgloss.Top, radarPanel, sidePanel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
