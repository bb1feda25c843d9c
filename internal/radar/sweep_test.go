package radar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAfterglowTrail(t *testing.T) {
	g := NewAfterglow(3)
	assert.Empty(t, g.Trail())

	for _, a := range []float64{10, 12, 14, 16} {
		g.Record(a)
	}
	assert.Equal(t, []float64{16, 14, 12}, g.Trail())

	g.Reset()
	assert.Empty(t, g.Trail())
}

func TestAfterglowIntensity(t *testing.T) {
	g := NewAfterglow(4)
	for _, a := range []float64{80, 85, 88, 90} {
		g.Record(a)
	}

	newest := g.Intensity(0, 90, 90)
	older := g.Intensity(2, 85, 90)
	assert.Greater(t, newest, older)
	assert.LessOrEqual(t, newest, 1.0)

	assert.Zero(t, g.Intensity(0, 10, 90), "outside the trail width")
	assert.Zero(t, g.Intensity(4, 90, 90), "older than the trail")
	assert.Zero(t, NewAfterglow(2).Intensity(0, 0, 0))
}

func TestAfterglowClone(t *testing.T) {
	g := NewAfterglow(3)
	g.Record(10)
	g.Record(20)

	c := g.Clone()
	g.Record(30)
	g.Reset()

	assert.Equal(t, []float64{20, 10}, c.Trail())
	assert.Empty(t, g.Trail())
}
