// Package radar draws scan data onto a Canvas: the half-plane polar view, the
// idle screen and the extruded 3D view. Canvases exist for the terminal
// (CellCanvas) and for offscreen images (ImageCanvas); the drawing code is
// shared.
package radar

import (
	"image/color"

	"surroundsense.klederson.com/internal/scan"
)

// Role is the semantic purpose of a drawn element. Canvases pick the glyph
// and color for it.
type Role uint8

const (
	RoleField  Role = iota // Radar background
	RoleGrid               // Range rings and minor spokes
	RoleAxis               // 90 degree spoke, idle outline
	RoleLabel              // Range and angle labels
	RoleTrace              // Scan trace
	RoleEcho               // Scan point with an object
	RoleGlow               // Beam afterglow
	RoleBeam               // Current beam
	RoleTarget             // Target marker
	RoleSensor             // Sensor marker at the origin
	RoleText               // Body text
	RoleTitle              // Headline text
	RoleFace               // 3D side face
	RoleWire               // 3D wireframe edge
)

// Ink is a role at a brightness level in [0, 1].
type Ink struct {
	Role  Role
	Level float64
}

// Solid returns a full-brightness ink.
func Solid(r Role) Ink {
	return Ink{Role: r, Level: 1}
}

// Shaded returns an ink at the given brightness, clamped to [0, 1].
func Shaded(r Role, level float64) Ink {
	return Ink{Role: r, Level: max(0, min(1, level))}
}

// Align is the horizontal anchoring of text.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas is a 2D drawing surface in its own device units: y grows downward,
// angles are degrees counter-clockwise from +x as seen on screen. Radii are in
// x units; vertical extents are scaled by Aspect(), so a circle of radius r
// spans r*Aspect() units in y.
type Canvas interface {
	Size() (w, h float64)
	Aspect() float64
	Line(a, b scan.Point, ink Ink)
	Arc(c scan.Point, r, startDeg, endDeg float64, ink Ink)
	Circle(c scan.Point, r float64, ink Ink, fill bool)
	Polygon(pts []scan.Point, ink Ink)
	Text(p scan.Point, s string, ink Ink, align Align)
}

// Matrix palette
var (
	colorBlack  = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	colorBright = color.RGBA{0x00, 0xFF, 0x41, 0xFF}
	colorGreen  = color.RGBA{0x00, 0xCC, 0x33, 0xFF}
	colorMid    = color.RGBA{0x00, 0x8F, 0x11, 0xFF}
	colorDim    = color.RGBA{0x00, 0x4A, 0x0A, 0xFF}
	colorField  = color.RGBA{0x00, 0x14, 0x04, 0xFF}
	colorTarget = color.RGBA{0xFF, 0x33, 0x00, 0xFF}
	colorSensor = color.RGBA{0x33, 0x99, 0xFF, 0xFF}
	colorWhite  = color.RGBA{0xE0, 0xFF, 0xE8, 0xFF}
	colorFace   = color.RGBA{0x00, 0x96, 0x69, 0xFF}
)

// Color resolves an ink to an opaque color.
func Color(ink Ink) color.RGBA {
	var base color.RGBA
	switch ink.Role {
	case RoleField:
		base = colorField
	case RoleGrid:
		base = colorDim
	case RoleAxis, RoleLabel:
		base = colorMid
	case RoleTrace, RoleWire:
		base = colorGreen
	case RoleEcho, RoleBeam, RoleGlow, RoleTitle:
		base = colorBright
	case RoleTarget:
		base = colorTarget
	case RoleSensor:
		base = colorSensor
	case RoleText:
		base = colorWhite
	case RoleFace:
		base = colorFace
	default:
		base = colorMid
	}
	return scale(base, ink.Level)
}

func scale(c color.RGBA, level float64) color.RGBA {
	if level >= 1 {
		return c
	}
	level = max(0, level)
	return color.RGBA{
		R: uint8(float64(c.R) * level),
		G: uint8(float64(c.G) * level),
		B: uint8(float64(c.B) * level),
		A: 0xFF,
	}
}
