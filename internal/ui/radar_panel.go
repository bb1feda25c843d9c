package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderRadarPanel wraps radar content with a styled border.
// The actual radar rendering is done externally to avoid import cycles.
func RenderRadarPanel(width, height int, radarContent, legend string) string {
	content := radarContent + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

// RenderLegend produces the radar legend line.
func RenderLegend(width int, threeD bool) string {
	legend := "   " +
		StyleLegendEcho.Render("• echo") + "  " +
		StyleLegendTarget.Render("● target") + "  " +
		StyleLegendSensor.Render("+ sensor")
	if threeD {
		legend = "   " + StyleLegend.Render("drag: rotate  right-drag: pan  wheel: zoom  T: auto-rotate")
	}

	pad := max(0, (width-lipgloss.Width(legend))/2)
	return strings.Repeat(" ", pad) + legend
}
