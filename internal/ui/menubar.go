package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/scan"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, device string, state scan.State) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"R", "eset"},
		{"C", "alibrate"},
		{"P", "ause"},
		{"V", "iew"},
		{"S", "napshot"},
		{"Q", "uit"},
	}

	var menu strings.Builder
	for _, k := range keys {
		menu.WriteString("  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label))
	}

	left := StyleMenuKey.Render(title) + menu.String()
	right := stateBadge(state, false) + "  " + StyleMenuLabel.Render("Sensor: "+device) + " "

	gap := max(0, width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func stateBadge(state scan.State, bracket bool) string {
	label := state.String()
	if bracket {
		label = "[" + label + "]"
	}
	switch state {
	case scan.Scanning:
		return StyleStatusScanning.Render(label)
	case scan.Paused:
		return StyleStatusPaused.Render(label)
	default:
		return StyleStatusIdle.Render(label)
	}
}
