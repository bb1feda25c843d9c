// Package snapshot renders the current view offscreen and writes it to disk
// as PNG or WebP.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"surroundsense.klederson.com/internal/config"
	"surroundsense.klederson.com/internal/radar"
	"surroundsense.klederson.com/internal/scan"
)

// Supported output formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// ErrUnknownFormat is returned for a format other than png or webp.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Mode names the view being captured; it ends up in the file name.
type Mode string

const (
	Mode2D Mode = "2D"
	Mode3D Mode = "3D"
)

// Frame is the state to draw.
type Frame struct {
	Mode   Mode
	Idle   bool
	Scene  radar.Scene
	Mesh   scan.Mesh
	Camera radar.Camera
}

// Options controls the output image.
type Options struct {
	Dir         string // Empty means DefaultDir()
	Format      string
	Width       int
	Height      int
	Supersample int
	Now         func() time.Time
}

// DefaultOptions returns a PNG at the default size.
func DefaultOptions() Options {
	return Options{
		Format:      FormatPNG,
		Width:       config.SnapshotWidth,
		Height:      config.SnapshotHeight,
		Supersample: 2,
		Now:         time.Now,
	}
}

// Render draws f on a fresh offscreen canvas and returns the image at
// Width×Height, downscaling from the supersampled render if needed.
func Render(f Frame, opts Options) image.Image {
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = config.SnapshotWidth, config.SnapshotHeight
	}
	ss := max(1, opts.Supersample)

	cv := radar.NewImageCanvas(w, h, float64(ss))
	switch {
	case f.Idle:
		radar.RenderIdle(cv, f.Scene.Projection, f.Scene.MaxRange)
	case f.Mode == Mode3D:
		cam := f.Camera
		radar.Render3D(cv, f.Mesh, &cam, false)
	default:
		radar.Render2D(cv, f.Scene)
	}

	img := cv.Image()
	if ss == 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatPNG, "":
		return png.Encode(w, img)
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// FileName builds SurroundSense_Radar_<mode>_<YYYYmmdd_HHMMSS>.<ext>.
func FileName(mode Mode, t time.Time, format string) string {
	ext := strings.ToLower(format)
	if ext == "" {
		ext = FormatPNG
	}
	return fmt.Sprintf("%s_%s_%s.%s", config.SnapshotPrefix, mode, t.Format("20060102_150405"), ext)
}

// DefaultDir is the user's Downloads folder, or the working directory when
// there is none.
func DefaultDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		dl := filepath.Join(home, "Downloads")
		if st, err := os.Stat(dl); err == nil && st.IsDir() {
			return dl
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Save renders f and writes it into the output directory. It returns the
// path of the written file.
func Save(f Frame, opts Options) (string, error) {
	dir := opts.Dir
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	mode := f.Mode
	if mode == "" {
		mode = Mode2D
	}
	path := filepath.Join(dir, FileName(mode, now(), opts.Format))

	img := Render(f, opts)

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Encode(out, img, opts.Format); err != nil {
		out.Close()
		os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return path, nil
}
