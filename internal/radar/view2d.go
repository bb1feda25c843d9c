package radar

import (
	"fmt"
	"math"

	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/scan"
)

// Scene is everything a frame needs from the scan pipeline.
type Scene struct {
	Points       []scan.ScanPoint
	Projection   scan.Projection
	MaxRange     float64
	Beam         float64
	BeamOK       bool
	BeamDistance float64
	Target       bool
	Glow         *Afterglow
}

// SceneFrom captures the current controller state.
func SceneFrom(c *scan.Controller, glow *Afterglow) Scene {
	beam, ok := c.BeamAngle()
	return Scene{
		Points:       c.Points(),
		Projection:   c.Projection(),
		MaxRange:     c.Settings().MaxRange,
		Beam:         beam,
		BeamOK:       ok,
		BeamDistance: c.BeamDistance(),
		Target:       c.Target(),
		Glow:         glow,
	}
}

// Render2D draws the polar half-plane view.
func Render2D(cv Canvas, s Scene) {
	vp := FitViewport(cv, s.Projection, s.MaxRange)
	if vp.Scale <= 0 {
		return
	}
	drawGrid(cv, vp)
	drawTrace(cv, vp, s.Points)
	drawBeam(cv, vp, s)
	cv.Circle(vp.Center, math.Max(0.5, vp.Radius(1.6)), Solid(RoleSensor), true)
}

func drawGrid(cv Canvas, vp Viewport) {
	maxR := vp.Radius(vp.MaxRange)
	cv.Polygon(halfDisc(vp, vp.MaxRange), Solid(RoleField))

	for d := float64(config.RingStepCM); d < vp.MaxRange; d += config.RingStepCM {
		cv.Arc(vp.Center, vp.Radius(d), 0, 180, Solid(RoleGrid))
	}
	cv.Arc(vp.Center, maxR, 0, 180, Solid(RoleAxis))
	cv.Line(vp.Polar(0, vp.MaxRange), vp.Polar(180, vp.MaxRange), Solid(RoleAxis))

	for a := 0; a <= 180; a += config.SpokeStepDeg {
		ink := Solid(RoleGrid)
		if a == 90 {
			ink = Solid(RoleAxis)
		}
		cv.Line(vp.Center, vp.Polar(float64(a), vp.MaxRange), ink)
	}

	for d := float64(config.RingStepCM); d < vp.MaxRange; d += config.RingStepCM {
		p := vp.Polar(90, d)
		p.X += vp.Radius(1.5)
		cv.Text(p, fmt.Sprintf("%.0fcm", d), Solid(RoleLabel), AlignLeft)
	}
	for a := 0; a <= 180; a += config.SpokeStepDeg {
		cv.Text(vp.Polar(float64(a), vp.MaxRange+labelMarginCM*0.6), fmt.Sprintf("%d°", a), Solid(RoleLabel), AlignCenter)
	}
}

// halfDisc approximates the field of view as a polygon.
func halfDisc(vp Viewport, dist float64) []scan.Point {
	pts := []scan.Point{vp.Center}
	for a := 0; a <= 180; a += 3 {
		pts = append(pts, vp.Polar(float64(a), dist))
	}
	return pts
}

// drawTrace joins every stored point in angle order with a dotted line. The
// stored coordinate of a no-object point already sits at max range.
func drawTrace(cv Canvas, vp Viewport, points []scan.ScanPoint) {
	spacing := math.Max(1, vp.Radius(0.4))
	for i := 1; i < len(points); i++ {
		dottedLine(cv, vp.Map(points[i-1].Coord), vp.Map(points[i].Coord), spacing, Solid(RoleTrace))
	}
	r := math.Max(0.5, vp.Radius(0.3))
	for _, p := range points {
		if p.HasObject {
			cv.Circle(vp.Map(p.Coord), r, Solid(RoleEcho), true)
		}
	}
}

func dottedLine(cv Canvas, a, b scan.Point, spacing float64, ink Ink) {
	dx, dy := b.X-a.X, b.Y-a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	n := int(dist/spacing) + 1
	r := math.Min(1, spacing/2)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		cv.Circle(scan.Point{X: a.X + t*dx, Y: a.Y + t*dy}, r, ink, true)
	}
}

func drawBeam(cv Canvas, vp Viewport, s Scene) {
	if !s.BeamOK {
		return
	}
	if s.Glow != nil {
		for age, a := range s.Glow.Trail() {
			level := s.Glow.Intensity(age, a, s.Beam)
			if level <= 0.05 {
				continue
			}
			cv.Line(vp.Center, vp.Polar(a, vp.MaxRange), Shaded(RoleGlow, level*0.6))
		}
	}

	end := vp.Polar(s.Beam, s.BeamDistance)
	cv.Line(vp.Center, end, Solid(RoleBeam))
	if s.Target && s.BeamDistance < vp.MaxRange {
		r := vp.Radius(2.4)
		cv.Circle(end, r, Solid(RoleTarget), true)
		cv.Circle(end, r, Solid(RoleText), false)
		cv.Circle(end, r/2, Solid(RoleTarget), true)

		label := end
		label.X += r + vp.Radius(1)
		cv.Text(label, fmt.Sprintf("%.1fcm", s.BeamDistance), Solid(RoleText), AlignLeft)
	}
}

// RenderIdle draws the waiting screen shown before a scan starts.
func RenderIdle(cv Canvas, proj scan.Projection, maxRange float64) {
	vp := FitViewport(cv, proj, maxRange)
	if vp.Scale <= 0 {
		return
	}
	cv.Arc(vp.Center, vp.Radius(maxRange), 0, 180, Solid(RoleGrid))
	cv.Circle(vp.Center, math.Max(0.5, vp.Radius(0.8)), Solid(RoleAxis), true)

	_, h := cv.Size()
	mid := vp.Polar(90, maxRange/2)
	gap := math.Max(1, h*0.05)
	cv.Text(scan.Point{X: mid.X, Y: mid.Y - gap}, "WELCOME TO "+config.AppName, Solid(RoleTitle), AlignCenter)
	cv.Text(scan.Point{X: mid.X, Y: mid.Y + gap}, "Press R and C to start scanning", Solid(RoleText), AlignCenter)
}
