package radar

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surroundsense.klederson.com/internal/scan"
)

func testScene() Scene {
	proj := scan.DefaultProjection()
	var points []scan.ScanPoint
	for k := 0; k <= 180; k += 5 {
		hasObject := k > 60 && k < 120
		d := 70.0
		if hasObject {
			d = 30
		}
		points = append(points, scan.ScanPoint{
			AngleKey:  k,
			Coord:     proj.PolarToXY(float64(k), d),
			HasObject: hasObject,
			Distance:  d,
		})
	}
	glow := NewAfterglow(8)
	for _, a := range []float64{96, 94, 92, 90} {
		glow.Record(a)
	}
	return Scene{
		Points:       points,
		Projection:   proj,
		MaxRange:     70,
		Beam:         90,
		BeamOK:       true,
		BeamDistance: 30,
		Target:       true,
		Glow:         glow,
	}
}

func countRole(cv *CellCanvas, r Role) int {
	n := 0
	for row := 0; row < cv.h; row++ {
		for col := 0; col < cv.w; col++ {
			if _, ink, ok := cv.At(col, row); ok && ink.Role == r {
				n++
			}
		}
	}
	return n
}

func TestRender2DCells(t *testing.T) {
	cv := NewCellCanvas(120, 40)
	s := testScene()
	Render2D(cv, s)

	vp := FitViewport(cv, s.Projection, s.MaxRange)
	_, ink, ok := cv.At(int(vp.Center.X), int(vp.Center.Y))
	require.True(t, ok)
	assert.Equal(t, RoleSensor, ink.Role)

	end := vp.Polar(90, 30)
	_, ink, ok = cv.At(int(end.X), int(end.Y))
	require.True(t, ok)
	assert.Equal(t, RoleTarget, ink.Role)

	assert.Positive(t, countRole(cv, RoleEcho))
	assert.Positive(t, countRole(cv, RoleTrace))
	assert.Positive(t, countRole(cv, RoleBeam))

	out := plain(cv.String())
	assert.Contains(t, out, "30.0cm")
	assert.Contains(t, out, "90°")
	assert.Contains(t, out, "10cm")
}

func TestRender2DNoBeam(t *testing.T) {
	cv := NewCellCanvas(120, 40)
	s := testScene()
	s.BeamOK = false
	Render2D(cv, s)
	assert.Zero(t, countRole(cv, RoleBeam))
	assert.Zero(t, countRole(cv, RoleTarget))
	assert.Zero(t, countRole(cv, RoleGlow))
}

func TestRender2DTinyCanvas(t *testing.T) {
	assert.NotPanics(t, func() {
		Render2D(NewCellCanvas(0, 0), testScene())
		Render2D(NewCellCanvas(3, 2), testScene())
	})
}

func TestRenderIdle(t *testing.T) {
	cv := NewCellCanvas(80, 24)
	RenderIdle(cv, scan.DefaultProjection(), 70)
	out := plain(cv.String())
	assert.Contains(t, out, "WELCOME TO SURROUNDSENSE")
	assert.Contains(t, out, "Press R and C to start scanning")
}

func TestRender3D(t *testing.T) {
	points := testScene().Points
	m := scan.Extrude(points, 12, 150)
	require.False(t, m.Empty())

	cv := NewCellCanvas(120, 40)
	Render3D(cv, m, NewCamera(), true)
	assert.Positive(t, countRole(cv, RoleWire))
	assert.Positive(t, countRole(cv, RoleFace))
	assert.Contains(t, plain(cv.String()), "3D VIEW - EXTRUDED SCAN DATA")
	assert.Contains(t, plain(cv.String()), "Auto-rotating")
}

func TestRender3DSkipsBehindCamera(t *testing.T) {
	m := scan.Mesh{
		Vertices: []scan.Vec3{{0, 0, -500}, {0, 50, -500}},
		Edges:    [][2]int{{0, 1}},
	}
	cv := NewCellCanvas(40, 20)
	Render3D(cv, m, &Camera{Distance: 400}, false)
	assert.Zero(t, countRole(cv, RoleWire))
}

func TestDepthShade(t *testing.T) {
	assert.Equal(t, 0.3, DepthShade(-1000))
	assert.Equal(t, 0.5, DepthShade(0))
	assert.Equal(t, 1.0, DepthShade(500))
}

func TestImageCanvasRender(t *testing.T) {
	cv := NewImageCanvas(320, 180, 1)
	Render2D(cv, testScene())

	img := cv.Image()
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 180, img.Bounds().Dy())

	vp := FitViewport(cv, scan.DefaultProjection(), 70)
	r, g, b, _ := img.At(int(vp.Center.X), int(vp.Center.Y)).RGBA()
	want := Color(Solid(RoleSensor))
	assert.Equal(t, uint32(want.R)*0x101, r)
	assert.Equal(t, uint32(want.G)*0x101, g)
	assert.Equal(t, uint32(want.B)*0x101, b)

	var buf strings.Builder
	require.NoError(t, cv.WritePNG(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "\x89PNG"))
}

func TestImageCanvasSupersample(t *testing.T) {
	cv := NewImageCanvas(100, 50, 2)
	w, h := cv.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 50.0, h)
	assert.Equal(t, 200, cv.Image().Bounds().Dx())
	assert.Equal(t, 100, cv.Image().Bounds().Dy())
}

func TestColorLevels(t *testing.T) {
	assert.Equal(t, colorBright, Color(Solid(RoleBeam)))
	assert.Equal(t, color.RGBA{A: 0xFF}, Color(Shaded(RoleBeam, 0)))
	half := Color(Shaded(RoleBeam, 0.5))
	assert.Equal(t, uint8(0x7F), half.G)
}
