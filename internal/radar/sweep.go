package radar

import (
	"surroundsense.klederson.com/internal/config"
)

// Afterglow remembers recent beam angles so the beam leaves a fading trail
// behind it, the way a phosphor display does.
type Afterglow struct {
	angles []float64
	pos    int
	count  int
}

// NewAfterglow keeps up to n past beam positions.
func NewAfterglow(n int) *Afterglow {
	if n < 1 {
		n = 1
	}
	return &Afterglow{angles: make([]float64, n)}
}

// Record adds the latest beam angle.
func (g *Afterglow) Record(angle float64) {
	g.angles[g.pos] = angle
	g.pos = (g.pos + 1) % len(g.angles)
	if g.count < len(g.angles) {
		g.count++
	}
}

// Reset forgets the trail.
func (g *Afterglow) Reset() {
	g.pos, g.count = 0, 0
}

// Trail returns past angles newest first.
func (g *Afterglow) Trail() []float64 {
	out := make([]float64, 0, g.count)
	for i := 1; i <= g.count; i++ {
		idx := (g.pos - i + len(g.angles)) % len(g.angles)
		out = append(out, g.angles[idx])
	}
	return out
}

// Intensity returns the glow [0, 1] of a trail entry age steps old, further
// dimmed by how far it lies from the current beam.
func (g *Afterglow) Intensity(age int, angle, beam float64) float64 {
	if g.count == 0 || age < 0 || age >= g.count {
		return 0
	}
	diff := AngleDiff(angle, beam)
	if diff > config.BeamTrailDeg {
		return 0
	}
	byAge := 1 - float64(age+1)/float64(g.count+1)
	return byAge * (1 - diff/config.BeamTrailDeg)
}

// Clone returns an independent copy of the trail.
func (g *Afterglow) Clone() *Afterglow {
	c := *g
	c.angles = append([]float64(nil), g.angles...)
	return &c
}
