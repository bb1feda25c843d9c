package scan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanMapPutGet(t *testing.T) {
	m := NewScanMap()
	require.NoError(t, m.Put(ScanPoint{AngleKey: 90, Distance: 30, HasObject: true}))
	require.NoError(t, m.Put(ScanPoint{AngleKey: 0, Distance: 70}))
	require.NoError(t, m.Put(ScanPoint{AngleKey: 180, Distance: 12, HasObject: true}))

	got, ok := m.Get(90)
	require.True(t, ok)
	assert.Equal(t, 30.0, got.Distance)

	_, ok = m.Get(45)
	assert.False(t, ok)
	_, ok = m.Get(-1)
	assert.False(t, ok)

	assert.Equal(t, 3, m.Len())
}

func TestScanMapOverwrite(t *testing.T) {
	m := NewScanMap()
	require.NoError(t, m.Put(ScanPoint{AngleKey: 42, Distance: 10, HasObject: true, Coord: Point{1, 2}}))
	second := ScanPoint{AngleKey: 42, Distance: 55, HasObject: false, Coord: Point{3, 4}}
	require.NoError(t, m.Put(second))

	got, ok := m.Get(42)
	require.True(t, ok)
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("overwrite mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, m.Len())
}

func TestScanMapRejectsOutOfRange(t *testing.T) {
	m := NewScanMap()
	assert.ErrorIs(t, m.Put(ScanPoint{AngleKey: 181}), ErrAngleOutOfRange)
	assert.ErrorIs(t, m.Put(ScanPoint{AngleKey: -1}), ErrAngleOutOfRange)
	assert.Equal(t, 0, m.Len())
}

func TestScanMapPointsAscending(t *testing.T) {
	m := NewScanMap()
	for _, k := range []int{120, 3, 77, 180, 0} {
		require.NoError(t, m.Put(ScanPoint{AngleKey: k, HasObject: k%2 == 0}))
	}

	var keys []int
	for _, p := range m.Points() {
		keys = append(keys, p.AngleKey)
	}
	assert.Equal(t, []int{0, 3, 77, 120, 180}, keys)

	var objs []int
	for _, p := range m.Objects() {
		objs = append(objs, p.AngleKey)
	}
	assert.Equal(t, []int{0, 120, 180}, objs)
}

func TestScanMapClear(t *testing.T) {
	m := NewScanMap()
	for k := 0; k <= MaxAngleKey; k++ {
		require.NoError(t, m.Put(ScanPoint{AngleKey: k}))
	}
	assert.Equal(t, 181, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Points())
}
