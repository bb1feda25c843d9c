package snapshot

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surroundsense.klederson.com/internal/radar"
	"surroundsense.klederson.com/internal/scan"
)

func testFrame() Frame {
	proj := scan.DefaultProjection()
	var points []scan.ScanPoint
	for k := 60; k <= 120; k += 2 {
		points = append(points, scan.ScanPoint{
			AngleKey:  k,
			Coord:     proj.PolarToXY(float64(k), 40),
			HasObject: true,
			Distance:  40,
		})
	}
	return Frame{
		Mode: Mode2D,
		Scene: radar.Scene{
			Points:       points,
			Projection:   proj,
			MaxRange:     70,
			Beam:         90,
			BeamOK:       true,
			BeamDistance: 40,
			Target:       true,
		},
		Mesh:   scan.Extrude(points, 1.5, 50),
		Camera: *radar.NewCamera(),
	}
}

func smallOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.Dir = t.TempDir()
	opts.Width, opts.Height = 200, 120
	opts.Now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	return opts
}

func TestFileName(t *testing.T) {
	ts := time.Date(2026, 10, 14, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "SurroundSense_Radar_2D_20261014_093005.png", FileName(Mode2D, ts, "png"))
	assert.Equal(t, "SurroundSense_Radar_3D_20261014_093005.webp", FileName(Mode3D, ts, "WEBP"))
	assert.Equal(t, "SurroundSense_Radar_2D_20261014_093005.png", FileName(Mode2D, ts, ""))
}

func TestRenderSize(t *testing.T) {
	for _, ss := range []int{1, 2, 3} {
		opts := smallOptions(t)
		opts.Supersample = ss
		img := Render(testFrame(), opts)
		assert.Equal(t, image.Rect(0, 0, 200, 120), img.Bounds(), "supersample %d", ss)
	}
}

func TestRenderDoesNotMutateCamera(t *testing.T) {
	f := testFrame()
	f.Mode = Mode3D
	before := f.Camera
	Render(f, smallOptions(t))
	assert.Equal(t, before, f.Camera)
}

func TestSavePNG(t *testing.T) {
	opts := smallOptions(t)
	path, err := Save(testFrame(), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.Dir, "SurroundSense_Radar_2D_20260304_050607.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestSaveWebP(t *testing.T) {
	opts := smallOptions(t)
	opts.Format = FormatWebP
	f := testFrame()
	f.Mode = Mode3D
	path, err := Save(f, opts)
	require.NoError(t, err)
	assert.Equal(t, ".webp", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestSaveIdle(t *testing.T) {
	f := testFrame()
	f.Idle = true
	_, err := Save(f, smallOptions(t))
	assert.NoError(t, err)
}

func TestSaveUnknownFormat(t *testing.T) {
	opts := smallOptions(t)
	opts.Format = "bmp"
	_, err := Save(testFrame(), opts)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	entries, err := os.ReadDir(opts.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file left behind")
}

func TestDefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, DefaultDir())

	require.NoError(t, os.Mkdir(filepath.Join(home, "Downloads"), 0755))
	assert.Equal(t, filepath.Join(home, "Downloads"), DefaultDir())
}
