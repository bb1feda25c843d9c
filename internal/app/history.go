package app

// DistanceRing is a circular buffer of recent filtered distances.
type DistanceRing struct {
	buf   []float64
	pos   int
	count int
}

// NewDistanceRing creates a new circular buffer with the given capacity.
func NewDistanceRing(capacity int) *DistanceRing {
	return &DistanceRing{
		buf: make([]float64, max(capacity, 1)),
	}
}

// Push adds a value to the ring buffer.
func (r *DistanceRing) Push(val float64) {
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Values returns all stored values in chronological order.
func (r *DistanceRing) Values() []float64 {
	if r.count == 0 {
		return nil
	}
	result := make([]float64, r.count)
	if r.count < len(r.buf) {
		copy(result, r.buf[:r.count])
	} else {
		n := copy(result, r.buf[r.pos:])
		copy(result[n:], r.buf[:r.pos])
	}
	return result
}

// Last returns the most recent value, or 0 if empty.
func (r *DistanceRing) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.buf[(r.pos-1+len(r.buf))%len(r.buf)]
}

// Len returns the number of stored values.
func (r *DistanceRing) Len() int {
	return r.count
}

// Reset empties the ring.
func (r *DistanceRing) Reset() {
	r.pos, r.count = 0, 0
}
