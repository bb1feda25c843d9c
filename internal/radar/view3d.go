package radar

import (
	"math"
	"sort"

	"surroundsense.klederson.com/internal/scan"
)

// view3DUnitsPerCell converts mesh units to terminal columns. Image canvases
// use one mesh unit per pixel.
const view3DUnitsPerCell = 6.0

type face struct {
	pts   []scan.Point
	depth float64
}

// Render3D draws the extruded mesh: depth-sorted shaded faces, then the
// wireframe on top. Elements with a vertex behind the camera or an endpoint
// off the canvas are skipped.
func Render3D(cv Canvas, m scan.Mesh, cam *Camera, autoRotateHint bool) {
	w, h := cv.Size()
	scale := 1.0
	if cv.Aspect() != 1 {
		scale = 1 / view3DUnitsPerCell
	}
	center := scan.Point{X: w / 2, Y: h / 2}

	type projected struct {
		p     scan.Point
		depth float64
		ok    bool
	}
	verts := make([]projected, len(m.Vertices))
	for i, v := range m.Vertices {
		sx, sy, depth, ok := cam.Project(v)
		p := scan.Point{X: center.X + sx*scale, Y: center.Y + sy*scale*cv.Aspect()}
		verts[i] = projected{p: p, depth: depth, ok: ok && onCanvas(p, w, h)}
	}

	faces := make([]face, 0, len(m.Quads))
	for _, q := range m.Quads {
		f := face{pts: make([]scan.Point, 0, 4)}
		valid := true
		for _, idx := range q {
			if !verts[idx].ok {
				valid = false
				break
			}
			f.pts = append(f.pts, verts[idx].p)
			f.depth += verts[idx].depth
		}
		if !valid {
			continue
		}
		f.depth /= float64(len(q))
		faces = append(faces, f)
	}
	// Back to front: larger view depth is further away.
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].depth > faces[j].depth })
	for _, f := range faces {
		cv.Polygon(f.pts, Shaded(RoleFace, DepthShade(f.depth)))
	}

	for _, e := range m.Edges {
		a, b := verts[e[0]], verts[e[1]]
		if !a.ok || !b.ok {
			continue
		}
		cv.Line(a.p, b.p, Solid(RoleWire))
	}

	title := scan.Point{X: center.X, Y: h - math.Max(2, h*0.12)}
	cv.Text(title, "3D VIEW - EXTRUDED SCAN DATA", Solid(RoleTitle), AlignCenter)
	if autoRotateHint && cam.AutoRotate {
		title.Y += math.Max(1, h*0.05)
		cv.Text(title, "Auto-rotating... Press T to toggle", Solid(RoleLabel), AlignCenter)
	}
}

// DepthShade maps a face's mean view depth to a brightness in [0.3, 1].
func DepthShade(depth float64) float64 {
	return max(0.3, min(1, (depth+200)/400))
}

func onCanvas(p scan.Point, w, h float64) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}
