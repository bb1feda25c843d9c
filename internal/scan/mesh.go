package scan

import "math"

// Vec3 is a 3-component vector in scene space: x right, y up, z depth.
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Mesh is an open ruled surface extruded from the object points of a scan.
// Vertex 2i is the base of the i-th point, 2i+1 its top.
type Mesh struct {
	Vertices []Vec3
	Keys     []int    // Angle key of each base/top pair
	Edges    [][2]int // Wireframe segments, as vertex indices
	Quads    [][4]int // Side faces between consecutive pairs
}

// Empty reports whether the mesh has no vertices.
func (m Mesh) Empty() bool {
	return len(m.Vertices) == 0
}

// Extrude builds the wireframe for points with HasObject set. points must be
// in ascending key order (ScanMap.Points guarantees it). Consecutive object
// points are joined even across missing degrees; the strip is never closed.
func Extrude(points []ScanPoint, scale, height float64) Mesh {
	var m Mesh
	for _, p := range points {
		if !p.HasObject {
			continue
		}
		r := p.Distance * scale
		a := float64(p.AngleKey) * math.Pi / 180
		x := r * math.Cos(a)
		z := r * math.Sin(a)

		base := len(m.Vertices)
		m.Vertices = append(m.Vertices, Vec3{x, 0, z}, Vec3{x, height, z})
		m.Keys = append(m.Keys, p.AngleKey)
		m.Edges = append(m.Edges, [2]int{base, base + 1})

		if base > 0 {
			prev := base - 2
			m.Edges = append(m.Edges,
				[2]int{prev, base},
				[2]int{prev + 1, base + 1},
			)
			m.Quads = append(m.Quads, [4]int{prev, base, base + 1, prev + 1})
		}
	}
	return m
}
