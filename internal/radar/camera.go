package radar

import (
	"math"

	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/scan"
)

// Camera orbits the extruded scan. Angles are in degrees.
type Camera struct {
	AngleX     float64 // Tilt
	AngleY     float64 // Orbit around the vertical axis
	Distance   float64
	PanX, PanY float64 // Screen-space offset, device units
	AutoRotate bool
}

// NewCamera returns a camera at the default pose with auto-rotation on.
func NewCamera() *Camera {
	c := &Camera{AutoRotate: true}
	c.Reset()
	return c
}

// Reset restores the default pose. Auto-rotation is left as is.
func (c *Camera) Reset() {
	c.AngleX = config.CameraAngleX
	c.AngleY = config.CameraAngleY
	c.Distance = config.CameraDistance
	c.PanX, c.PanY = 0, 0
}

// Tick advances auto-rotation by one frame.
func (c *Camera) Tick() {
	if !c.AutoRotate {
		return
	}
	c.AngleY += config.AutoRotateDeg
	if c.AngleY >= 360 {
		c.AngleY = 0
	}
}

// Rotate orbits by the given deltas. Tilt is limited to straight down / up.
func (c *Camera) Rotate(dx, dy float64) {
	c.AngleY = scan.Wrap360(c.AngleY + dx)
	c.AngleX = max(-90, min(90, c.AngleX+dy))
}

// Pan shifts the view on screen.
func (c *Camera) Pan(dx, dy float64) {
	c.PanX += dx
	c.PanY += dy
}

// Zoom moves the camera closer (negative) or further away (positive).
func (c *Camera) Zoom(delta float64) {
	c.Distance = max(config.CameraMinDist, min(config.CameraMaxDist, c.Distance+delta))
}

// Project rotates v about X then Y and applies perspective. It returns the
// screen offset from the view center (y down), the view depth, and false when
// the point is at or behind the camera.
func (c *Camera) Project(v scan.Vec3) (sx, sy, depth float64, ok bool) {
	ax := c.AngleX * math.Pi / 180
	ay := c.AngleY * math.Pi / 180

	x, y, z := v[0], v[1], v[2]
	y1 := y*math.Cos(ax) - z*math.Sin(ax)
	z1 := y*math.Sin(ax) + z*math.Cos(ax)

	x2 := x*math.Cos(ay) + z1*math.Sin(ay)
	z2 := -x*math.Sin(ay) + z1*math.Cos(ay)

	if z2+c.Distance <= 0 {
		return 0, 0, z2, false
	}
	f := c.Distance / (z2 + c.Distance)
	return x2*f + c.PanX, -y1*f + c.PanY, z2, true
}
