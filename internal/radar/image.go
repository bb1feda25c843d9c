package radar

import (
	"image"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"surroundsense.klederson.com/internal/scan"
)

// ImageCanvas draws vector graphics into an in-memory raster. Device units
// are output pixels at supersample 1; a higher supersample renders finer
// pixels over the same coordinate space.
type ImageCanvas struct {
	c    *vgimg.Canvas
	w, h float64
	face font.Face
}

// NewImageCanvas creates a w×h canvas rendered at supersample× resolution.
func NewImageCanvas(w, h int, supersample float64) *ImageCanvas {
	if supersample < 1 {
		supersample = 1
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(w), vg.Length(h)),
		vgimg.UseDPI(int(math.Round(vg.Inch.Points()*supersample))),
		vgimg.UseBackgroundColor(colorBlack),
	)
	fnt := plot.DefaultFont
	fnt.Variant = "Mono"
	return &ImageCanvas{
		c:    c,
		w:    float64(w),
		h:    float64(h),
		face: font.DefaultCache.Lookup(fnt, vg.Length(math.Max(10, float64(h)/45))),
	}
}

func (c *ImageCanvas) Size() (float64, float64) { return c.w, c.h }

func (c *ImageCanvas) Aspect() float64 { return 1 }

// Image returns the rendered raster.
func (c *ImageCanvas) Image() image.Image { return c.c.Image() }

// WritePNG encodes the raster as PNG.
func (c *ImageCanvas) WritePNG(w io.Writer) error {
	_, err := vgimg.PngCanvas{Canvas: c.c}.WriteTo(w)
	return err
}

// pt flips into vg's y-up coordinate space.
func (c *ImageCanvas) pt(p scan.Point) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: vg.Length(c.h - p.Y)}
}

func (c *ImageCanvas) Line(a, b scan.Point, ink Ink) {
	var p vg.Path
	p.Move(c.pt(a))
	p.Line(c.pt(b))
	c.stroke(p, ink)
}

func (c *ImageCanvas) Arc(center scan.Point, r, startDeg, endDeg float64, ink Ink) {
	start := startDeg * math.Pi / 180
	sweep := (endDeg - startDeg) * math.Pi / 180
	cp := c.pt(center)

	var p vg.Path
	p.Move(vg.Point{
		X: cp.X + vg.Length(r*math.Cos(start)),
		Y: cp.Y + vg.Length(r*math.Sin(start)),
	})
	p.Arc(cp, vg.Length(r), start, sweep)
	c.stroke(p, ink)
}

func (c *ImageCanvas) Circle(center scan.Point, r float64, ink Ink, fill bool) {
	cp := c.pt(center)
	var p vg.Path
	p.Move(vg.Point{X: cp.X + vg.Length(r), Y: cp.Y})
	p.Arc(cp, vg.Length(r), 0, 2*math.Pi)
	p.Close()
	if fill {
		c.c.SetColor(Color(ink))
		c.c.Fill(p)
		return
	}
	c.stroke(p, ink)
}

func (c *ImageCanvas) Polygon(pts []scan.Point, ink Ink) {
	if len(pts) < 3 {
		return
	}
	var p vg.Path
	p.Move(c.pt(pts[0]))
	for _, q := range pts[1:] {
		p.Line(c.pt(q))
	}
	p.Close()
	c.c.SetColor(Color(ink))
	c.c.Fill(p)
}

// Text places s with its vertical middle at p.Y.
func (c *ImageCanvas) Text(p scan.Point, s string, ink Ink, align Align) {
	pt := c.pt(p)
	width := c.face.Width(s)
	switch align {
	case AlignCenter:
		pt.X -= width / 2
	case AlignRight:
		pt.X -= width
	}
	pt.Y -= c.face.Extents().Ascent / 2
	c.c.SetColor(Color(ink))
	c.c.FillString(c.face, pt, s)
}

func (c *ImageCanvas) stroke(p vg.Path, ink Ink) {
	c.c.SetLineWidth(vg.Length(lineWidth(ink.Role)))
	c.c.SetColor(Color(ink))
	c.c.Stroke(p)
}

func lineWidth(r Role) float64 {
	switch r {
	case RoleBeam:
		return 4
	case RoleAxis, RoleWire, RoleTarget:
		return 2
	case RoleGlow:
		return 3
	}
	return 1
}
