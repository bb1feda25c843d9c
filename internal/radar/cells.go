package radar

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/scan"
)

type cell struct {
	ch  rune
	ink Ink
	set bool
}

// CellCanvas rasterizes onto a grid of terminal cells. One device unit is one
// cell; cells are about twice as tall as they are wide.
type CellCanvas struct {
	w, h  int
	cells []cell
}

// NewCellCanvas creates a blank w×h grid.
func NewCellCanvas(w, h int) *CellCanvas {
	w, h = max(w, 0), max(h, 0)
	return &CellCanvas{w: w, h: h, cells: make([]cell, w*h)}
}

func (c *CellCanvas) Size() (float64, float64) { return float64(c.w), float64(c.h) }

func (c *CellCanvas) Aspect() float64 { return config.AspectRatio }

// At returns the glyph and ink at a cell, for tests and hit checks.
func (c *CellCanvas) At(col, row int) (rune, Ink, bool) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return ' ', Ink{}, false
	}
	cl := c.cells[row*c.w+col]
	if !cl.set {
		return ' ', Ink{}, false
	}
	return cl.ch, cl.ink, true
}

func (c *CellCanvas) plot(x, y float64, ch rune, ink Ink) {
	col, row := int(math.Floor(x)), int(math.Floor(y))
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	c.cells[row*c.w+col] = cell{ch: ch, ink: ink, set: true}
}

func (c *CellCanvas) Line(a, b scan.Point, ink Ink) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	ch := strokeChar(math.Atan2(-dy/config.AspectRatio, dx)*180/math.Pi, ink.Role)
	if steps == 0 {
		c.plot(a.X, a.Y, ch, ink)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.plot(a.X+t*dx, a.Y+t*dy, ch, ink)
	}
}

func (c *CellCanvas) Arc(center scan.Point, r, startDeg, endDeg float64, ink Ink) {
	if r <= 0 {
		c.plot(center.X, center.Y, dotChar(ink.Role, true), ink)
		return
	}
	step := 0.4 / r * 180 / math.Pi // about half a cell of arc length
	for a := startDeg; a <= endDeg+step/2; a += step {
		a := math.Min(a, endDeg)
		rad := a * math.Pi / 180
		x := center.X + r*math.Cos(rad)
		y := center.Y - r*config.AspectRatio*math.Sin(rad)
		c.plot(x, y, strokeChar(a+90, ink.Role), ink)
	}
}

func (c *CellCanvas) Circle(center scan.Point, r float64, ink Ink, fill bool) {
	if r < 1 {
		c.plot(center.X, center.Y, dotChar(ink.Role, fill), ink)
		return
	}
	if !fill {
		c.Arc(center, r, 0, 360, ink)
		return
	}
	ry := r * config.AspectRatio
	for row := int(center.Y - ry); row <= int(center.Y+ry); row++ {
		for col := int(center.X - r); col <= int(center.X+r); col++ {
			dx := (float64(col) + 0.5 - center.X) / r
			dy := (float64(row) + 0.5 - center.Y) / ry
			if dx*dx+dy*dy <= 1 {
				c.plot(float64(col), float64(row), fillChar(ink), ink)
			}
		}
	}
}

// Polygon fills using the even-odd rule, sampled at cell centers.
func (c *CellCanvas) Polygon(pts []scan.Point, ink Ink) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	ch := fillChar(ink)
	for row := max(0, int(math.Floor(minY))); row <= min(c.h-1, int(math.Ceil(maxY))); row++ {
		y := float64(row) + 0.5
		var xs []float64
		for i := range pts {
			p, q := pts[i], pts[(i+1)%len(pts)]
			if (p.Y <= y) == (q.Y <= y) {
				continue
			}
			xs = append(xs, p.X+(y-p.Y)/(q.Y-p.Y)*(q.X-p.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for col := int(math.Ceil(xs[i] - 0.5)); float64(col)+0.5 <= xs[i+1]; col++ {
				c.plot(float64(col), y, ch, ink)
			}
		}
	}
}

func (c *CellCanvas) Text(p scan.Point, s string, ink Ink, align Align) {
	runes := []rune(s)
	x := math.Floor(p.X)
	switch align {
	case AlignCenter:
		x -= float64(len(runes) / 2)
	case AlignRight:
		x -= float64(len(runes) - 1)
	}
	for i, r := range runes {
		c.plot(x+float64(i), p.Y, r, ink)
	}
}

// String renders the grid, one styled run per stretch of identical ink.
func (c *CellCanvas) String() string {
	var sb strings.Builder
	var run strings.Builder
	for row := 0; row < c.h; row++ {
		var runInk Ink
		runSet := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runSet {
				sb.WriteString(cellStyle(runInk).Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for col := 0; col < c.w; col++ {
			cl := c.cells[row*c.w+col]
			if cl.set != runSet || (cl.set && cl.ink != runInk) {
				flush()
				runInk, runSet = cl.ink, cl.set
			}
			if cl.set {
				run.WriteRune(cl.ch)
			} else {
				run.WriteByte(' ')
			}
		}
		flush()
		if row < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func cellStyle(ink Ink) lipgloss.Style {
	col := Color(ink)
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)))
	switch ink.Role {
	case RoleEcho, RoleTarget, RoleSensor, RoleTitle, RoleBeam:
		s = s.Bold(true)
	}
	return s
}

// strokeChar picks a glyph for a stroke travelling in direction deg.
func strokeChar(deg float64, role Role) rune {
	switch role {
	case RoleBeam:
		return '█'
	case RoleGlow:
		return '▒'
	}
	d := math.Mod(deg, 180)
	if d < 0 {
		d += 180
	}
	switch sector := int(math.Round(d/45)) % 4; sector {
	case 0:
		return '-'
	case 1:
		return '/'
	case 2:
		return '|'
	default:
		return '\\'
	}
}

func dotChar(role Role, fill bool) rune {
	switch role {
	case RoleSensor:
		return '+'
	case RoleTarget:
		if fill {
			return '●'
		}
		return '◎'
	case RoleEcho:
		return '•'
	case RoleTrace:
		return '·'
	}
	if fill {
		return '●'
	}
	return 'o'
}

func fillChar(ink Ink) rune {
	switch ink.Role {
	case RoleField:
		return '.'
	case RoleFace:
		switch {
		case ink.Level > 0.8:
			return '▓'
		case ink.Level > 0.5:
			return '▒'
		default:
			return '░'
		}
	}
	return '█'
}
