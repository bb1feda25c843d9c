package scan

import "sort"

// DistanceFilter is a median-of-last-N filter on distance readings. A median
// drops single-sample spikes while still following slow changes.
type DistanceFilter struct {
	window   *Smoother
	maxRange float64
	scratch  []float64
}

// NewDistanceFilter creates a filter over the last size readings, clamping
// inputs to [0, maxRange].
func NewDistanceFilter(size int, maxRange float64) *DistanceFilter {
	w := NewSmoother(size)
	return &DistanceFilter{
		window:   w,
		maxRange: maxRange,
		scratch:  make([]float64, 0, w.Cap()),
	}
}

// Filter pushes a reading and returns the median of the window.
func (f *DistanceFilter) Filter(raw float64) float64 {
	f.window.Push(clamp(raw, 0, f.maxRange))
	return f.Median()
}

// Median returns the middle element of the sorted window, or 0 if empty.
// For an even count this is the upper of the two middle values.
func (f *DistanceFilter) Median() float64 {
	n := f.window.Len()
	if n == 0 {
		return 0
	}
	f.scratch = append(f.scratch[:0], f.window.buf[:n]...)
	sort.Float64s(f.scratch)
	return f.scratch[n/2]
}

// Reset empties the window.
func (f *DistanceFilter) Reset() {
	f.window.Reset()
}

// Len returns the number of readings in the window.
func (f *DistanceFilter) Len() int {
	return f.window.Len()
}
