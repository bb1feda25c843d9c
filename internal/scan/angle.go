package scan

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"surroundsense.klederson.com/internal/config"
)

// Wrap360 normalizes an angle in degrees into [0, 360). Non-finite input
// yields 0.
func Wrap360(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -tiny + 360 rounds to 360
	if a >= 360 {
		a -= 360
	}
	return a
}

// SweepAngle maps a raw yaw reading onto the sensor's forward half-plane
// before any smoothing. The second result is false when the calibrated yaw
// points behind the sensor.
func SweepAngle(rawYaw float64, cal Calibration) (float64, bool) {
	y := rawYaw
	if cal.Calibrated {
		y -= cal.YawOffset
	}
	y = Wrap360(y)
	if y < 0 || y > 180 {
		return 0, false
	}
	return 180 - y, true
}

// Smoother is a bounded FIFO of recent angles with a running mean.
type Smoother struct {
	buf   []float64
	pos   int
	count int
}

// NewSmoother creates a smoother holding at most capacity values.
func NewSmoother(capacity int) *Smoother {
	if capacity < 1 {
		capacity = 1
	}
	return &Smoother{
		buf: make([]float64, capacity),
	}
}

// Push adds a value, evicting the oldest one when full.
func (s *Smoother) Push(val float64) {
	s.buf[s.pos] = val
	s.pos = (s.pos + 1) % len(s.buf)
	if s.count < len(s.buf) {
		s.count++
	}
}

// Mean returns the average of the stored values, or 0 if empty.
func (s *Smoother) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return stat.Mean(s.buf[:s.count], nil)
}

// Values returns all stored values in chronological order.
func (s *Smoother) Values() []float64 {
	if s.count == 0 {
		return nil
	}
	result := make([]float64, s.count)
	if s.count < len(s.buf) {
		copy(result, s.buf[:s.count])
	} else {
		n := copy(result, s.buf[s.pos:])
		copy(result[n:], s.buf[:s.pos])
	}
	return result
}

// Reset empties the smoother.
func (s *Smoother) Reset() {
	s.pos = 0
	s.count = 0
}

// Prewarm replaces the contents with capacity copies of val.
func (s *Smoother) Prewarm(val float64) {
	s.Reset()
	for range s.buf {
		s.Push(val)
	}
}

// Len returns the number of stored values.
func (s *Smoother) Len() int { return s.count }

// Cap returns the smoother capacity.
func (s *Smoother) Cap() int { return len(s.buf) }

// ComputeAngle turns a raw yaw into a smoothed sweep angle in [0, 180].
//
// Until calibration the indicator is pinned to the center: 90 is pushed and
// the running mean returned, which also pre-warms the buffer. After
// calibration a yaw behind the sensor returns false and leaves buf untouched.
func ComputeAngle(rawYaw float64, cal Calibration, buf *Smoother) (float64, bool) {
	if !cal.Calibrated {
		buf.Push(config.CenterAngle)
		return buf.Mean(), true
	}
	a, ok := SweepAngle(rawYaw, cal)
	if !ok {
		return 0, false
	}
	buf.Push(a)
	return clamp(buf.Mean(), 0, 180), true
}

// AngleCalibrator is one smoothing channel (beam or map) of the pipeline.
type AngleCalibrator struct {
	buf *Smoother
}

// NewAngleCalibrator creates a channel averaging over window samples.
func NewAngleCalibrator(window int) *AngleCalibrator {
	return &AngleCalibrator{buf: NewSmoother(window)}
}

// Compute runs ComputeAngle against this channel's buffer.
func (a *AngleCalibrator) Compute(rawYaw float64, cal Calibration) (float64, bool) {
	return ComputeAngle(rawYaw, cal, a.buf)
}

// Prewarm fills the buffer with the center angle so the first readings after
// calibration do not sweep in from a stale average.
func (a *AngleCalibrator) Prewarm() {
	a.buf.Prewarm(config.CenterAngle)
}

// Reset empties the buffer.
func (a *AngleCalibrator) Reset() {
	a.buf.Reset()
}

// Buffer exposes the underlying smoother for inspection.
func (a *AngleCalibrator) Buffer() *Smoother {
	return a.buf
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
