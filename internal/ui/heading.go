package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderHeading renders a compass with an arrow along the sensor yaw.
// yaw: degrees (0=north, clockwise). proximity: 0 for nothing in range up to
// 1 for an object touching the sensor; it sets the arrow length and color.
func RenderHeading(width, height int, yaw, proximity float64) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]byte, height)
	isArrow := make([][]bool, height)
	for i := range grid {
		grid[i] = make([]byte, width)
		isArrow[i] = make([]bool, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := math.Max(fcx-2.0, 3) // horizontal radius in columns
	ry := math.Max(fcy-2.0, 2) // vertical radius in rows

	// Ring
	steps := 80
	for i := range steps {
		a := float64(i) * 2 * math.Pi / float64(steps)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if col >= 0 && col < width && row >= 0 && row < height && grid[row][col] == ' ' {
			grid[row][col] = ringChar(a)
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))

	setGrid(grid, width, height, cx, cy-int(math.Round(ry))-1, 'N')
	setGrid(grid, width, height, cx, cy+int(math.Round(ry))+1, 'S')
	setGrid(grid, width, height, cx+int(math.Round(rx))+1, cy, 'E')
	setGrid(grid, width, height, cx-int(math.Round(rx))-1, cy, 'W')
	setGrid(grid, width, height, cx, cy, '+')

	angle := yaw * math.Pi / 180
	proximity = math.Max(0, math.Min(proximity, 1))
	arrowFrac := 0.3 + 0.55*proximity // closer = longer
	sinA, cosA := math.Sin(angle), math.Cos(angle)

	shaftSteps := max(int(math.Max(rx, ry)*arrowFrac), 2)
	tipCol, tipRow := -1, -1
	for s := 1; s <= shaftSteps; s++ {
		t := float64(s) / float64(shaftSteps) * arrowFrac
		col := int(math.Round(fcx + t*rx*sinA))
		row := int(math.Round(fcy - t*ry*cosA))
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = shaftChar(angle)
			isArrow[row][col] = true
			tipCol, tipRow = col, row
		}
	}
	if tipCol >= 0 {
		grid[tipRow][tipCol] = arrowTip(angle)
	}

	arrowSty := lipgloss.NewStyle().Foreground(lipgloss.Color(proximityColor(proximity))).Bold(true)
	ringSty := lipgloss.NewStyle().Foreground(ColorDimGreen)
	markSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)

	var sb strings.Builder
	for row := range height {
		for col := range width {
			ch := grid[row][col]
			switch {
			case ch == 'N' || ch == 'S' || ch == 'E' || ch == 'W' || ch == '+':
				sb.WriteString(markSty.Render(string(ch)))
			case isArrow[row][col]:
				sb.WriteString(arrowSty.Render(string(ch)))
			case ch != ' ':
				sb.WriteString(ringSty.Render(string(ch)))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func setGrid(grid [][]byte, w, h, col, row int, ch byte) {
	if col >= 0 && col < w && row >= 0 && row < h {
		grid[row][col] = ch
	}
}

func sector(a float64) int {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return int(math.Round(a/(math.Pi/4))) % 8
}

func ringChar(a float64) byte {
	switch sector(a) {
	case 1, 5:
		return '\\'
	case 2, 6:
		return '|'
	case 3, 7:
		return '/'
	}
	return '-'
}

// shaftChar returns the line character for a given angle direction.
func shaftChar(a float64) byte {
	switch sector(a) {
	case 2, 6: // E, W
		return '-'
	case 1, 5: // NE, SW
		return '/'
	case 3, 7: // SE, NW
		return '\\'
	}
	return '|'
}

// arrowTip returns the arrowhead character for a given angle.
func arrowTip(a float64) byte {
	return "^/>\\v/<\\"[sector(a)]
}

// proximityColor maps closeness to a color: red when nearly touching, then
// brighter green the closer the object.
func proximityColor(p float64) string {
	switch {
	case p > 0.8:
		return string(ColorError)
	case p > 0.6:
		return "#00FF41"
	case p > 0.4:
		return "#00CC33"
	case p > 0.2:
		return "#00AA22"
	case p > 0:
		return "#008F11"
	}
	return "#005511"
}
