package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/golfsim/internal/projectile"
)

func TestNewPlotFixedAxes(t *testing.T) {
	points := []projectile.Point{{Range: 250, MaxHeight: 120}}

	p, err := NewPlot(points, nil)
	require.NoError(t, err)

	assert.Equal(t, Title, p.Title.Text)
	assert.Equal(t, XMin, p.X.Min)
	assert.Equal(t, XMax, p.X.Max)
	assert.Equal(t, YMin, p.Y.Min)
	assert.Equal(t, YMax, p.Y.Max)
}

func TestNewPlotRejectsNaN(t *testing.T) {
	_, err := NewPlot([]projectile.Point{{Range: math.NaN(), MaxHeight: 1}}, nil)
	assert.Error(t, err)
}

func TestWritePNGSize(t *testing.T) {
	p, err := NewPlot([]projectile.Point{{Range: 30, MaxHeight: 10}}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, p))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, Width, Height), img.Bounds())
}

func TestSavePNGDrawsFlightPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectory.png")
	vx, vy := 10.0, 15.0
	points := []projectile.Point{projectile.Evaluate(vx, vy)}
	arc := projectile.FlightPath(vx, vy, 60)

	require.NoError(t, SavePNG(path, points, arc))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.True(t, hasRedPixel(img), "expected the flight path to be drawn in red")
}

func TestSavePNGMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "trajectory.png")

	err := SavePNG(path, []projectile.Point{{}}, nil)
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func hasRedPixel(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// anti-aliased edges blend toward white; accept any red-dominant pixel
			if r > 0xc000 && r > g+0x4000 && r > bl+0x4000 {
				return true
			}
		}
	}
	return false
}
