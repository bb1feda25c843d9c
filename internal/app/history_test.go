package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceRing(t *testing.T) {
	r := NewDistanceRing(3)
	assert.Nil(t, r.Values())
	assert.Zero(t, r.Last())

	r.Push(1)
	r.Push(2)
	assert.Equal(t, []float64{1, 2}, r.Values())
	assert.Equal(t, 2.0, r.Last())

	r.Push(3)
	r.Push(4)
	assert.Equal(t, []float64{2, 3, 4}, r.Values())
	assert.Equal(t, 4.0, r.Last())
	assert.Equal(t, 3, r.Len())

	r.Reset()
	assert.Zero(t, r.Len())
	assert.Nil(t, r.Values())
}

func TestDistanceRingMinimumCapacity(t *testing.T) {
	r := NewDistanceRing(0)
	r.Push(5)
	r.Push(6)
	assert.Equal(t, []float64{6}, r.Values())
}
