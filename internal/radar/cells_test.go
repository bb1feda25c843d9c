package radar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"surroundsense.klederson.com/internal/scan"
)

func TestCellCanvasLine(t *testing.T) {
	cv := NewCellCanvas(10, 3)
	cv.Line(scan.Point{X: 0, Y: 1}, scan.Point{X: 9, Y: 1}, Solid(RoleGrid))

	for col := 0; col < 10; col++ {
		ch, ink, ok := cv.At(col, 1)
		assert.True(t, ok)
		assert.Equal(t, '-', ch)
		assert.Equal(t, RoleGrid, ink.Role)
	}
	_, _, ok := cv.At(0, 0)
	assert.False(t, ok)

	cv.Line(scan.Point{X: 4, Y: 0}, scan.Point{X: 4, Y: 2}, Solid(RoleAxis))
	ch, _, _ := cv.At(4, 1)
	assert.Equal(t, '|', ch, "later strokes win")
}

func TestCellCanvasClipsOffGrid(t *testing.T) {
	cv := NewCellCanvas(4, 2)
	cv.Line(scan.Point{X: -20, Y: -5}, scan.Point{X: 20, Y: 5}, Solid(RoleBeam))
	cv.Text(scan.Point{X: 3, Y: 0}, "overflow", Solid(RoleText), AlignLeft)
	assert.Len(t, strings.Split(plain(cv.String()), "\n"), 2)
}

func TestCellCanvasText(t *testing.T) {
	cv := NewCellCanvas(11, 1)
	cv.Text(scan.Point{X: 5, Y: 0}, "abc", Solid(RoleText), AlignCenter)
	assert.Equal(t, "    abc    ", plain(cv.String()))

	cv = NewCellCanvas(6, 1)
	cv.Text(scan.Point{X: 5, Y: 0}, "xy", Solid(RoleText), AlignRight)
	assert.Equal(t, "    xy", plain(cv.String()))
}

func TestCellCanvasPolygon(t *testing.T) {
	cv := NewCellCanvas(6, 4)
	cv.Polygon([]scan.Point{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 3}, {X: 1, Y: 3}}, Solid(RoleField))

	inside, _, ok := cv.At(2, 2)
	assert.True(t, ok)
	assert.Equal(t, '.', inside)
	_, _, ok = cv.At(0, 0)
	assert.False(t, ok)
	_, _, ok = cv.At(5, 2)
	assert.False(t, ok)
}

func TestCellCanvasDotsAndShades(t *testing.T) {
	cv := NewCellCanvas(3, 1)
	cv.Circle(scan.Point{X: 0.2, Y: 0.2}, 0.5, Solid(RoleSensor), true)
	cv.Circle(scan.Point{X: 1.2, Y: 0.2}, 0.5, Solid(RoleEcho), true)
	cv.Polygon([]scan.Point{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 2, Y: 1}}, Shaded(RoleFace, 0.2))

	assert.Equal(t, "+•░", plain(cv.String()))
}

func TestCellCanvasArc(t *testing.T) {
	cv := NewCellCanvas(21, 11)
	center := scan.Point{X: 10, Y: 10}
	cv.Arc(center, 10, 0, 180, Solid(RoleGrid))

	_, _, ok := cv.At(10, 5)
	assert.True(t, ok, "top of arc is squashed by the cell aspect")
	_, _, ok = cv.At(10, 8)
	assert.False(t, ok)
}

func plain(s string) string {
	return ansi.Strip(s)
}
