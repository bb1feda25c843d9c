package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceFilterMedian(t *testing.T) {
	t.Run("odd window", func(t *testing.T) {
		f := NewDistanceFilter(3, 70)
		f.Filter(3)
		f.Filter(7)
		assert.Equal(t, 5.0, f.Filter(5))
	})

	t.Run("constant input", func(t *testing.T) {
		f := NewDistanceFilter(3, 70)
		for i := 0; i < 3; i++ {
			f.Filter(10)
		}
		assert.Equal(t, 10.0, f.Median())
	})

	t.Run("rejects a single spike", func(t *testing.T) {
		f := NewDistanceFilter(5, 70)
		for _, d := range []float64{20, 21, 20, 65, 21} {
			f.Filter(d)
		}
		assert.Equal(t, 21.0, f.Median())
	})

	t.Run("even count takes the upper middle", func(t *testing.T) {
		f := NewDistanceFilter(4, 70)
		f.Filter(1)
		assert.Equal(t, 2.0, f.Filter(2))
	})

	t.Run("clamps into range", func(t *testing.T) {
		f := NewDistanceFilter(1, 70)
		assert.Equal(t, 70.0, f.Filter(400))
		assert.Equal(t, 0.0, f.Filter(-3))
	})

	t.Run("window slides", func(t *testing.T) {
		f := NewDistanceFilter(3, 70)
		for _, d := range []float64{10, 10, 10, 50, 50} {
			f.Filter(d)
		}
		assert.Equal(t, 50.0, f.Median())
	})

	t.Run("reset empties", func(t *testing.T) {
		f := NewDistanceFilter(3, 70)
		f.Filter(10)
		f.Reset()
		assert.Equal(t, 0, f.Len())
		assert.Equal(t, 0.0, f.Median())
	})
}
