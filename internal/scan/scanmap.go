package scan

import "fmt"

// MaxAngleKey is the largest angle bucket; keys run 0..MaxAngleKey inclusive.
const MaxAngleKey = 180

// ScanPoint is the latest observation for one whole-degree bucket.
type ScanPoint struct {
	AngleKey  int
	Coord     Point // Projected at the display distance
	HasObject bool
	Distance  float64 // Filtered distance, cm
}

// ScanView is the read-only side of a ScanMap handed to renderers.
type ScanView interface {
	Len() int
	Get(key int) (ScanPoint, bool)
	Points() []ScanPoint
}

// ScanMap holds at most one ScanPoint per degree. Writes to an occupied key
// replace the previous point outright.
type ScanMap struct {
	slots [MaxAngleKey + 1]ScanPoint
	used  [MaxAngleKey + 1]bool
	n     int
}

// NewScanMap creates an empty map.
func NewScanMap() *ScanMap {
	return &ScanMap{}
}

// Put stores p under p.AngleKey.
func (m *ScanMap) Put(p ScanPoint) error {
	if p.AngleKey < 0 || p.AngleKey > MaxAngleKey {
		return fmt.Errorf("scan map put %d: %w", p.AngleKey, ErrAngleOutOfRange)
	}
	if !m.used[p.AngleKey] {
		m.used[p.AngleKey] = true
		m.n++
	}
	m.slots[p.AngleKey] = p
	return nil
}

// Get returns the point stored under key.
func (m *ScanMap) Get(key int) (ScanPoint, bool) {
	if key < 0 || key > MaxAngleKey || !m.used[key] {
		return ScanPoint{}, false
	}
	return m.slots[key], true
}

// Len returns the number of occupied keys.
func (m *ScanMap) Len() int {
	return m.n
}

// Points returns a copy of every stored point in ascending key order.
func (m *ScanMap) Points() []ScanPoint {
	out := make([]ScanPoint, 0, m.n)
	for k := range m.slots {
		if m.used[k] {
			out = append(out, m.slots[k])
		}
	}
	return out
}

// Objects returns the stored points that saw an object, ascending.
func (m *ScanMap) Objects() []ScanPoint {
	out := make([]ScanPoint, 0, m.n)
	for k := range m.slots {
		if m.used[k] && m.slots[k].HasObject {
			out = append(out, m.slots[k])
		}
	}
	return out
}

// Clear removes every point.
func (m *ScanMap) Clear() {
	*m = ScanMap{}
}
