package radar

import (
	"math"

	"surroundsense.klederson.com/internal/scan"
)

// labelMarginCM is how far past max range the angle labels sit.
const labelMarginCM = 15

// Viewport maps projected scan coordinates onto a canvas. It scales and
// translates only; polar math stays in scan.Projection.
type Viewport struct {
	Proj     scan.Projection
	MaxRange float64
	Center   scan.Point // Sensor position in device units
	Scale    float64    // Device x units per projected unit
	Aspect   float64
}

// FitViewport sizes the half-plane (plus its labels) into cv with the sensor
// at the bottom center.
func FitViewport(cv Canvas, proj scan.Projection, maxRange float64) Viewport {
	w, h := cv.Size()
	aspect := cv.Aspect()
	outer := proj.Radius(maxRange + labelMarginCM)

	padX := math.Max(1, w*0.02)
	padTop := math.Max(1, h*0.04)
	padBottom := math.Max(1, h*0.06)

	scale := math.Inf(1)
	if outer > 0 {
		scale = math.Min((w-2*padX)/(2*outer), (h-padTop-padBottom)/(outer*aspect))
	}
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 0
	}
	return Viewport{
		Proj:     proj,
		MaxRange: maxRange,
		Center:   scan.Point{X: w / 2, Y: h - padBottom},
		Scale:    scale,
		Aspect:   aspect,
	}
}

// Map converts a projected point into device units.
func (v Viewport) Map(p scan.Point) scan.Point {
	return scan.Point{
		X: v.Center.X + (p.X-v.Proj.Origin.X)*v.Scale,
		Y: v.Center.Y + (p.Y-v.Proj.Origin.Y)*v.Scale*v.Aspect,
	}
}

// Polar projects a reading and maps it onto the canvas.
func (v Viewport) Polar(angleDeg, distCM float64) scan.Point {
	return v.Map(v.Proj.PolarToXY(angleDeg, distCM))
}

// Radius returns the device x-radius for a distance.
func (v Viewport) Radius(distCM float64) float64 {
	return v.Proj.Radius(distCM) * v.Scale
}

// AngleDiff returns the unsigned difference between two angles in degrees,
// in [0, 180].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(scan.Wrap360(a) - scan.Wrap360(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}
