package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"surroundsense.klederson.com/internal/scan"
)

// StatusInfo is what the bottom bar shows.
type StatusInfo struct {
	State     scan.State
	Points    int
	Objects   int
	Beam      float64
	BeamOK    bool
	MaxRange  float64
	Message   string // Transient message, empty for none
	MessageOK bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusInfo) string {
	beam := "--"
	if s.BeamOK {
		beam = fmt.Sprintf("%3.0f°", s.Beam)
	}
	info := fmt.Sprintf(" Points: %d  Objects: %d  Beam: %s  Range: 0-%.0fcm",
		s.Points, s.Objects, beam, s.MaxRange)

	content := stateBadge(s.State, true) + StyleMenuLabel.Render(info)
	if s.Message != "" {
		msg := StyleMessageErr.Render(s.Message)
		if s.MessageOK {
			msg = StyleMessageOK.Render(s.Message)
		}
		content += "  " + msg
	}

	gap := max(0, width-2-lipgloss.Width(content))
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
