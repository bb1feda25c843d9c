package scan

import (
	"math"

	"surroundsense.klederson.com/internal/config"
)

// Point is a 2D position in projected units, y growing downward.
type Point struct {
	X, Y float64
}

// Projection converts polar readings into projected screen units. It is the
// only place polar math happens: the scan map stores its output and renderers
// map those same points onto their canvas.
type Projection struct {
	Origin Point   // Sensor position
	Scale  float64 // Units per centimeter
}

// DefaultProjection places the sensor at the origin with the configured scale.
func DefaultProjection() Projection {
	return Projection{Scale: config.PixelScale}
}

// PolarToXY projects a bearing (degrees, 0 = right, 90 = straight ahead) and a
// distance in centimeters.
func (p Projection) PolarToXY(angleDeg, distCM float64) Point {
	r := distCM * p.Scale
	a := angleDeg * math.Pi / 180
	return Point{
		X: p.Origin.X + r*math.Cos(a),
		Y: p.Origin.Y - r*math.Sin(a),
	}
}

// Radius returns the projected radius for a distance.
func (p Projection) Radius(distCM float64) float64 {
	return distCM * p.Scale
}
