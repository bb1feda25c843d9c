package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"surroundsense.klederson.com/internal/scan"
)

// SensorCard is the live sensor readout.
type SensorCard struct {
	Sensor      scan.SensorState
	Calibration scan.Calibration
	Target      bool
	MaxRange    float64
	History     []float64 // Filtered distances, oldest first
}

// SystemCard describes the pipeline and the link.
type SystemCard struct {
	State     scan.State
	Link      string
	LinkAlive bool
	Session   string
	Points    int
	Objects   int
	Errors    int
}

// ViewCard describes the active view.
type ViewCard struct {
	ThreeD     bool
	AutoRotate bool
	AngleX     float64
	AngleY     float64
	Distance   float64
}

// SidePanel is the right-hand column of cards.
type SidePanel struct {
	Sensor SensorCard
	System SystemCard
	View   ViewCard
}

var controls = []struct{ key, label string }{
	{"R", "reset scan"},
	{"C", "calibrate"},
	{"SPC/P", "pause"},
	{"V", "2D / 3D"},
	{"T", "auto-rotate"},
	{"S", "snapshot"},
	{"F", "fullscreen"},
	{"I", "idle"},
	{"Q", "quit"},
}

// RenderSidePanel renders the stack of cards into a bordered panel.
func RenderSidePanel(p SidePanel, width, height int) string {
	contentW := max(width-4, 10)

	var sb strings.Builder
	sb.WriteString(renderSensorCard(p.Sensor, contentW))
	sb.WriteString(renderSystemCard(p.System, contentW))
	sb.WriteString(renderViewCard(p.View, contentW))
	sb.WriteString(renderControlsCard(contentW))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if limit := height - 2; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func cardTitle(title string, width int) string {
	rule := max(0, width-lipgloss.Width(title)-3)
	return StylePanelTitle.Render(title) + StyleRule.Render(strings.Repeat("─", rule)) + "\n"
}

func field(label, value string) string {
	return fmt.Sprintf(" %s %s\n", StyleLabel.Render(fmt.Sprintf("%-9s", label+":")), value)
}

func renderSensorCard(c SensorCard, width int) string {
	var sb strings.Builder
	sb.WriteString(cardTitle("SENSOR", width))

	proximity := 0.0
	if c.Target && c.MaxRange > 0 {
		proximity = 1 - c.Sensor.Distance/c.MaxRange
	}
	if compass := RenderHeading(min(width, 21), 7, c.Sensor.YawRaw, proximity); compass != "" {
		sb.WriteString(compass + "\n")
	}

	dist := StyleValue.Render(fmt.Sprintf("%.1f cm", c.Sensor.Distance))
	if c.Target {
		dist = StyleTarget.Render(fmt.Sprintf("%.1f cm", c.Sensor.Distance))
	}
	sb.WriteString(field("Distance", dist+StyleLabel.Render(fmt.Sprintf(" (raw %.1f)", c.Sensor.DistanceRaw))))
	sb.WriteString(" " + renderRangeBar(c.Sensor.Distance, c.MaxRange, c.Target, width-2) + "\n")
	if len(c.History) > 1 {
		sb.WriteString(" " + renderSparkline(c.History, c.MaxRange, width-2) + "\n")
	}
	sb.WriteString(field("Yaw", StyleValue.Render(fmt.Sprintf("%.1f°", c.Sensor.YawRaw))))
	sb.WriteString(field("Object", StyleValue.Render(c.Sensor.Object)))
	sb.WriteString(field("Motion", StyleValue.Render(c.Sensor.Direction+" / "+c.Sensor.Gyro)))

	calib := StyleCheckOff.Render("no")
	if c.Calibration.Calibrated {
		calib = StyleCheckOn.Render(fmt.Sprintf("yes (offset %+.1f°)", c.Calibration.YawOffset))
	}
	sb.WriteString(field("Calib", calib))
	return sb.String()
}

func renderSystemCard(c SystemCard, width int) string {
	var sb strings.Builder
	sb.WriteString(cardTitle("SYSTEM", width))
	sb.WriteString(field("State", stateBadge(c.State, false)))

	link := StyleCheckOn.Render(c.Link)
	if !c.LinkAlive {
		link = StyleTarget.Render(c.Link + " (lost)")
	}
	sb.WriteString(field("Link", link))

	session := "-"
	if c.Session != "" {
		session = c.Session
		if len(session) > 8 {
			session = session[:8]
		}
	}
	sb.WriteString(field("Session", StyleValue.Render(session)))
	sb.WriteString(field("Points", StyleValue.Render(fmt.Sprintf("%d (%d objects)", c.Points, c.Objects))))
	sb.WriteString(field("Errors", StyleValue.Render(fmt.Sprintf("%d", c.Errors))))
	return sb.String()
}

func renderViewCard(c ViewCard, width int) string {
	var sb strings.Builder
	sb.WriteString(cardTitle("VIEW", width))
	if !c.ThreeD {
		sb.WriteString(field("Mode", StyleValue.Render("2D radar")))
		return sb.String()
	}
	sb.WriteString(field("Mode", StyleValue.Render("3D extruded")))
	rotate := StyleCheckOff.Render("off")
	if c.AutoRotate {
		rotate = StyleCheckOn.Render("on")
	}
	sb.WriteString(field("Rotate", rotate))
	sb.WriteString(field("Camera", StyleValue.Render(fmt.Sprintf("%.0f° / %.0f° @ %.0f", c.AngleX, c.AngleY, c.Distance))))
	return sb.String()
}

func renderControlsCard(width int) string {
	var sb strings.Builder
	sb.WriteString(cardTitle("CONTROLS", width))
	for _, k := range controls {
		sb.WriteString(fmt.Sprintf(" %s %s\n", StyleMenuKey.Render(fmt.Sprintf("%-6s", k.key)), StyleHelp.Render(k.label)))
	}
	return sb.String()
}

// renderSparkline draws a tiny sparkline of distance history, most recent on
// the right. Values are scaled against maxRange.
func renderSparkline(values []float64, maxRange float64, width int) string {
	chars := []rune{'_', '.', '-', '~', '^'}
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if maxRange <= 0 {
		maxRange = 1
	}

	var sb strings.Builder
	for _, v := range values {
		frac := math.Max(0, math.Min(v/maxRange, 1))
		idx := int(frac * float64(len(chars)-1))
		sb.WriteRune(chars[idx])
	}
	return StyleLabel.Render(sb.String())
}

// renderRangeBar shows distance as a filled bar; a target turns it red.
func renderRangeBar(dist, maxRange float64, target bool, width int) string {
	width = max(width, 1)
	filled := 0
	if maxRange > 0 {
		filled = int(math.Round(math.Max(0, math.Min(dist/maxRange, 1)) * float64(width)))
	}

	sty := StyleValue
	if target {
		sty = StyleTarget
	}
	return sty.Render(strings.Repeat("█", filled)) + StyleHelp.Render(strings.Repeat("░", width-filled))
}
